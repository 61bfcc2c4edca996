// Package composer holds post drafts: typed image URLs, a title, a location,
// a 0-5 rating, a description and tagged usernames. Drafts are never
// persisted.
package composer

import (
	"errors"
	"strings"
	"sync"
)

const (
	MinRating = 0
	MaxRating = 5
)

var ErrSlotOutOfRange = errors.New("url input index out of range")

// Draft is safe for concurrent use. Committed image URLs are index-aligned
// with the URL input slots they came from.
type Draft struct {
	mu          sync.Mutex
	urlInputs   []string
	imageURLs   []string
	title       string
	location    string
	description string
	rating      int
	tags        []string
}

type View struct {
	URLInputs   []string `json:"url_inputs"`
	ImageURLs   []string `json:"image_urls"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Rating      int      `json:"rating"`
	Tags        []string `json:"tags"`
	Submittable bool     `json:"submittable"`
}

// NewDraft starts with one empty URL input.
func NewDraft() *Draft {
	return &Draft{
		urlInputs: []string{""},
		imageURLs: []string{},
		tags:      []string{},
	}
}

func (d *Draft) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		URLInputs:   append([]string{}, d.urlInputs...),
		ImageURLs:   append([]string{}, d.imageURLs...),
		Title:       d.title,
		Location:    d.location,
		Description: d.description,
		Rating:      d.rating,
		Tags:        append([]string{}, d.tags...),
		Submittable: d.submittableLocked(),
	}
}

// AddURLInput appends an empty input and returns its index.
func (d *Draft) AddURLInput() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urlInputs = append(d.urlInputs, "")
	return len(d.urlInputs) - 1
}

func (d *Draft) UpdateURLInput(index int, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.urlInputs) {
		return ErrSlotOutOfRange
	}
	d.urlInputs[index] = value
	return nil
}

// RemoveURLInput drops the input at index together with the image committed
// from it, if any.
func (d *Draft) RemoveURLInput(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.urlInputs) {
		return ErrSlotOutOfRange
	}
	d.urlInputs = append(d.urlInputs[:index], d.urlInputs[index+1:]...)
	if index < len(d.imageURLs) {
		d.imageURLs = append(d.imageURLs[:index], d.imageURLs[index+1:]...)
	}
	return nil
}

// CommitURL turns the trimmed text of input index into an image URL. An
// existing image at index is replaced; otherwise the list is padded with
// empty entries so the image lands at index. Blank input is ignored.
func (d *Draft) CommitURL(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.urlInputs) {
		return ErrSlotOutOfRange
	}
	url := strings.TrimSpace(d.urlInputs[index])
	if url == "" {
		return nil
	}
	if index < len(d.imageURLs) {
		d.imageURLs[index] = url
		return nil
	}
	for len(d.imageURLs) < index {
		d.imageURLs = append(d.imageURLs, "")
	}
	d.imageURLs = append(d.imageURLs, url)
	return nil
}

func (d *Draft) SetTitle(title string) {
	d.mu.Lock()
	d.title = title
	d.mu.Unlock()
}

func (d *Draft) SetLocation(location string) {
	d.mu.Lock()
	d.location = location
	d.mu.Unlock()
}

func (d *Draft) SetDescription(description string) {
	d.mu.Lock()
	d.description = description
	d.mu.Unlock()
}

// SetRating stores rating clamped to [MinRating, MaxRating] and returns the
// stored value.
func (d *Draft) SetRating(rating int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rating = ClampRating(rating)
	return d.rating
}

// AddTag adds the trimmed tag unless it is empty or already present.
func (d *Draft) AddTag(tag string) bool {
	t := strings.TrimSpace(tag)
	if t == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.tags {
		if existing == t {
			return false
		}
	}
	d.tags = append(d.tags, t)
	return true
}

func (d *Draft) RemoveTag(tag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.tags {
		if existing == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Submit reports whether the draft has a title and at least one committed
// image. Padding entries left by CommitURL do not count. It writes nothing.
func (d *Draft) Submit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submittableLocked()
}

func (d *Draft) submittableLocked() bool {
	if strings.TrimSpace(d.title) == "" {
		return false
	}
	for _, url := range d.imageURLs {
		if url != "" {
			return true
		}
	}
	return false
}

func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}
