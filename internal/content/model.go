package content

// FAQ is a question/answer pair shown on the public site.
type FAQ struct {
	ID       string
	Question string
	Answer   string
}

// Page is a markdown content page addressed by slug.
type Page struct {
	ID     string
	Slug   string
	Title  string
	BodyMD string
}
