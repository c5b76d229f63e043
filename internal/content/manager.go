package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// ErrNotFound is returned when a category, item or image is missing
var ErrNotFound = errors.New("not found")

// Manager handles the editable site content: menu, gallery, about
// page and policy texts.
type Manager struct {
	store *docstore.Store
}

// NewManager creates a content manager backed by the document store
func NewManager(store *docstore.Store) *Manager {
	return &Manager{store: store}
}

// Menu returns all menu categories ordered by their order field
func (m *Manager) Menu() ([]models.MenuCategory, error) {
	menu := []models.MenuCategory{}
	if err := m.store.Read(docstore.DocMenu, &menu); err != nil {
		return nil, err
	}

	sort.SliceStable(menu, func(i, j int) bool {
		return menu[i].Order < menu[j].Order
	})

	return menu, nil
}

// AddCategory appends a new menu category
func (m *Manager) AddCategory(name string, order int) (*models.MenuCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category := models.MenuCategory{
		ID:    "cat-" + uuid.New().String()[:8],
		Name:  strings.TrimSpace(name),
		Order: order,
		Items: []models.MenuItem{},
	}

	var menu []models.MenuCategory
	err := m.store.Update(docstore.DocMenu, &menu, func() error {
		menu = append(menu, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// UpdateCategory overwrites the name and order of a category
func (m *Manager) UpdateCategory(id, name string, order int) (*models.MenuCategory, error) {
	var updated *models.MenuCategory
	var menu []models.MenuCategory
	err := m.store.Update(docstore.DocMenu, &menu, func() error {
		for i := range menu {
			if menu[i].ID == id {
				if strings.TrimSpace(name) != "" {
					menu[i].Name = strings.TrimSpace(name)
				}
				menu[i].Order = order
				record := menu[i]
				updated = &record
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory removes a category and all its items
func (m *Manager) DeleteCategory(id string) error {
	var menu []models.MenuCategory
	return m.store.Update(docstore.DocMenu, &menu, func() error {
		for i := range menu {
			if menu[i].ID == id {
				menu = append(menu[:i], menu[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddItem appends a menu item to a category
func (m *Manager) AddItem(categoryID string, item models.MenuItem) (*models.MenuItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("item price cannot be negative")
	}

	item.ID = "item-" + uuid.New().String()[:8]

	var menu []models.MenuCategory
	err := m.store.Update(docstore.DocMenu, &menu, func() error {
		for i := range menu {
			if menu[i].ID == categoryID {
				menu[i].Items = append(menu[i].Items, item)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateItem overwrites a menu item wherever it lives
func (m *Manager) UpdateItem(itemID string, item models.MenuItem) (*models.MenuItem, error) {
	item.ID = itemID

	var menu []models.MenuCategory
	err := m.store.Update(docstore.DocMenu, &menu, func() error {
		for i := range menu {
			for j := range menu[i].Items {
				if menu[i].Items[j].ID == itemID {
					menu[i].Items[j] = item
					return nil
				}
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// DeleteItem removes a menu item by id
func (m *Manager) DeleteItem(itemID string) error {
	var menu []models.MenuCategory
	return m.store.Update(docstore.DocMenu, &menu, func() error {
		for i := range menu {
			for j := range menu[i].Items {
				if menu[i].Items[j].ID == itemID {
					menu[i].Items = append(menu[i].Items[:j], menu[i].Items[j+1:]...)
					return nil
				}
			}
		}
		return ErrNotFound
	})
}

// Gallery returns all gallery images ordered by their order field
func (m *Manager) Gallery() ([]models.GalleryImage, error) {
	gallery := []models.GalleryImage{}
	if err := m.store.Read(docstore.DocGallery, &gallery); err != nil {
		return nil, err
	}

	sort.SliceStable(gallery, func(i, j int) bool {
		return gallery[i].Order < gallery[j].Order
	})

	return gallery, nil
}

// AddImage stores metadata for a newly uploaded image
func (m *Manager) AddImage(image models.GalleryImage) (*models.GalleryImage, error) {
	if strings.TrimSpace(image.URL) == "" {
		return nil, fmt.Errorf("image url is required")
	}

	image.ID = "img-" + uuid.New().String()[:8]
	image.CreatedAt = time.Now()

	var gallery []models.GalleryImage
	err := m.store.Update(docstore.DocGallery, &gallery, func() error {
		gallery = append(gallery, image)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &image, nil
}

// UpdateImage overwrites title, alt text and order of an image
func (m *Manager) UpdateImage(id string, image models.GalleryImage) (*models.GalleryImage, error) {
	var updated *models.GalleryImage
	var gallery []models.GalleryImage
	err := m.store.Update(docstore.DocGallery, &gallery, func() error {
		for i := range gallery {
			if gallery[i].ID == id {
				gallery[i].Title = image.Title
				gallery[i].AltText = image.AltText
				gallery[i].Order = image.Order
				record := gallery[i]
				updated = &record
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteImage removes image metadata by id
func (m *Manager) DeleteImage(id string) error {
	var gallery []models.GalleryImage
	return m.store.Update(docstore.DocGallery, &gallery, func() error {
		for i := range gallery {
			if gallery[i].ID == id {
				gallery = append(gallery[:i], gallery[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// About returns the about page document
func (m *Manager) About() (models.AboutPage, error) {
	var about models.AboutPage
	err := m.store.Read(docstore.DocAbout, &about)
	return about, err
}

// SaveAbout overwrites the about page document
func (m *Manager) SaveAbout(about models.AboutPage) error {
	return m.store.Write(docstore.DocAbout, about)
}

// Policies returns the legal policy texts
func (m *Manager) Policies() (models.Policies, error) {
	var policies models.Policies
	err := m.store.Read(docstore.DocPolicies, &policies)
	return policies, err
}

// SavePolicies overwrites the legal policy texts
func (m *Manager) SavePolicies(policies models.Policies) error {
	return m.store.Write(docstore.DocPolicies, policies)
}
