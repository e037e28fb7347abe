package tmdb

// Payload shapes for the subset of the catalog API the frontend renders.
// Unknown fields in upstream responses are ignored on decode.

// Movie is a single list entry as returned by popular/search results.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
}

// MovieList is a paged list of movies.
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre is a movie genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited actor on a movie.
type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// Credits holds the cast list attached to a movie detail response.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// MovieDetails is a full movie record with credits appended.
type MovieDetails struct {
	Movie
	BackdropPath *string `json:"backdrop_path"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
	Tagline      string  `json:"tagline"`
	Credits      Credits `json:"credits"`
}

// Person is a person record with their movie credits appended.
type Person struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Biography    string  `json:"biography"`
	Birthday     *string `json:"birthday"`
	Deathday     *string `json:"deathday"`
	PlaceOfBirth *string `json:"place_of_birth"`
	ProfilePath  *string `json:"profile_path"`
	MovieCredits struct {
		Cast []Movie `json:"cast"`
	} `json:"movie_credits"`
}

// Review is a single user review of a movie.
type Review struct {
	ID            string  `json:"id"`
	Author        string  `json:"author"`
	Content       string  `json:"content"`
	CreatedAt     string  `json:"created_at"`
	AuthorDetails struct {
		AvatarPath *string  `json:"avatar_path"`
		Rating     *float64 `json:"rating"`
	} `json:"author_details"`
}

// ReviewList is a paged list of reviews for one movie.
type ReviewList struct {
	Page         int      `json:"page"`
	Results      []Review `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}
