// This file defines the structs that represent volume documents returned
// by the Google Books API (https://www.googleapis.com/books/v1), plus the
// normalized Volume shape the rest of the app works with.
package googlebooks

// Volume is the canonical, normalized view of a catalog entry. List
// fields from the API (authors, categories) are joined into display
// strings and are never empty-null: see normalizeVolume.
type Volume struct {
	GoogleVolumeId string  `json:"googleVolumeId"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Publisher      string  `json:"publisher"`
	PublishedDate  string  `json:"publishedDate"`
	Thumbnail      string  `json:"thumbnail"`
	Genre          string  `json:"genre"`
	Description    string  `json:"description"`
	InfoLink       string  `json:"infoLink,omitempty"`
	CatalogRating  float64 `json:"catalogRating,omitempty"`
}

// ----- Raw API response shapes -----

type searchResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Publisher     string      `json:"publisher"`
	PublishedDate string      `json:"publishedDate"`
	Description   string      `json:"description"`
	Categories    []string    `json:"categories"`
	AverageRating float64     `json:"averageRating"`
	InfoLink      string      `json:"infoLink"`
	ImageLinks    *imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
	Small          string `json:"small"`
	Medium         string `json:"medium"`
	Large          string `json:"large"`
}
