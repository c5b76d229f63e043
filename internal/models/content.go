package models

import "time"

// MenuCategory groups menu items; the menu document is an ordered list
// of categories.
type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Order int        `json:"order"`
	Items []MenuItem `json:"items"`
}

// MenuItem is a single dish or drink on the menu
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// GalleryImage holds metadata for an uploaded image. The image bytes
// themselves live in external object storage.
type GalleryImage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	AltText   string    `json:"altText,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// AboutPage is the singleton document behind the public about page
type AboutPage struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Policies holds the legal policy texts shown on the public site
type Policies struct {
	KVKK    string `json:"kvkk"`
	Privacy string `json:"privacy"`
	Cookies string `json:"cookies"`
}
