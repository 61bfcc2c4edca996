// Package wizard implements the three-step destination creation flow: pick a
// category, pick or name a subcategory, then fill in the destination details
// and submit.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

const (
	MessageInvalidForm        = "Please fill all required fields including image, category, and location URL."
	MessageSubcategoryMissing = "A subcategory must be selected or created."
	MessageLoadCategories     = "Failed to load categories."
	MessageLoadSubcategories  = "Failed to load subcategories."
	submissionFailedPrefix    = "Submission failed: "
)

var (
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrInvalidForm        = errors.New("wizard form is incomplete")
	ErrSubmissionFailed   = errors.New("submission failed")
	ErrSubcategoryMissing = errors.New("a subcategory must be selected or created")
	ErrUnknownSubcategory = errors.New("subcategory is not offered for the selected category")
	ErrLoadFailed         = errors.New("failed to load choices")
	ErrClosed             = errors.New("wizard closed")
)

// Snapshot is a consistent copy of the wizard as observers see it.
type Snapshot struct {
	Form          Form                 `json:"form"`
	Valid         bool                 `json:"valid"`
	Missing       []string             `json:"missing,omitempty"`
	State         CreationState        `json:"-"`
	Status        StateView            `json:"state"`
	Categories    []domain.Category    `json:"categories"`
	Subcategories []domain.Subcategory `json:"subcategories"`
	Loading       bool                 `json:"loading"`
	LoadError     string               `json:"load_error,omitempty"`
}

// Wizard owns one in-progress destination submission. Setters may be called
// from any goroutine; at most one Submit runs at a time.
type Wizard struct {
	repo ports.DestinationsRepository

	mu            sync.Mutex
	form          Form
	state         CreationState
	categories    []domain.Category
	subcategories []domain.Subcategory
	subsLoaded    bool
	loading       int
	loadError     string
	closed        bool

	observers    map[int]chan Snapshot
	nextObserver int
}

func New(repo ports.DestinationsRepository) *Wizard {
	return &Wizard{
		repo:          repo,
		state:         StateIdle{},
		categories:    []domain.Category{},
		subcategories: []domain.Subcategory{},
		observers:     make(map[int]chan Snapshot),
	}
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) State() CreationState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Wizard) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Subscribe returns a channel carrying the latest snapshot after every
// change. A slow reader only ever sees the most recent snapshot. The channel
// is closed by the returned cancel func or when the wizard is closed.
func (w *Wizard) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := w.nextObserver
	w.nextObserver++
	w.observers[id] = ch
	ch <- w.snapshotLocked()
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if c, ok := w.observers[id]; ok {
			delete(w.observers, id)
			close(c)
		}
	}
	return ch, cancel
}

// Close releases all observers. Later Subscribe calls get a closed channel.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for id, ch := range w.observers {
		delete(w.observers, id)
		close(ch)
	}
}

// LoadCategories fills the category choices from the first snapshot of the
// repository stream.
func (w *Wizard) LoadCategories(ctx context.Context) error {
	w.update(func() { w.loading++ })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := w.repo.GetCategories(ctx)
	items, err := first(ctx, ch, err)

	w.update(func() {
		w.loading--
		if err != nil {
			w.loadError = MessageLoadCategories
			return
		}
		w.categories = items
		w.loadError = ""
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return nil
}

// SelectCategory records the category, clears any subcategory choice and
// loads the subcategories under it with a single repository request. The
// creation state is left untouched.
func (w *Wizard) SelectCategory(ctx context.Context, categoryID uuid.UUID) error {
	w.update(func() {
		w.form.CategoryID = categoryID
		w.form.SubcategoryID = uuid.Nil
		w.form.NewSubcategoryName = ""
		w.subcategories = []domain.Subcategory{}
		w.subsLoaded = false
		w.loading++
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := w.repo.GetSubcategoriesByParent(ctx, categoryID)
	items, err := first(ctx, ch, err)

	w.update(func() {
		w.loading--
		if w.form.CategoryID != categoryID {
			// a later selection owns the choices now
			return
		}
		if err != nil {
			w.loadError = MessageLoadSubcategories
			return
		}
		w.subcategories = domain.FilterSubcategories(items, categoryID)
		w.subsLoaded = true
		w.loadError = ""
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return nil
}

// SelectSubcategory picks an existing subcategory and clears the new
// subcategory name. uuid.Nil clears the selection.
func (w *Wizard) SelectSubcategory(subcategoryID uuid.UUID) error {
	var err error
	w.update(func() {
		if subcategoryID != uuid.Nil && w.subsLoaded && !containsSubcategory(w.subcategories, subcategoryID) {
			err = ErrUnknownSubcategory
			return
		}
		w.form.SubcategoryID = subcategoryID
		if subcategoryID != uuid.Nil {
			w.form.NewSubcategoryName = ""
		}
	})
	return err
}

// SetNewSubcategoryName records the name of a subcategory to create. A
// non-blank name clears the selected subcategory.
func (w *Wizard) SetNewSubcategoryName(name string) {
	w.update(func() {
		w.form.NewSubcategoryName = name
		if !isBlank(name) {
			w.form.SubcategoryID = uuid.Nil
		}
	})
}

func (w *Wizard) SetDestinationName(name string) {
	w.update(func() { w.form.DestinationName = name })
}

func (w *Wizard) SetDescription(description string) {
	w.update(func() { w.form.Description = description })
}

func (w *Wizard) SetMapURL(mapURL string) {
	w.update(func() { w.form.MapURL = mapURL })
}

func (w *Wizard) SetInitialRule(rule string) {
	w.update(func() { w.form.InitialRule = rule })
}

// SetCoverImage replaces the picked image. nil clears it.
func (w *Wizard) SetCoverImage(image *CoverImage) {
	w.update(func() { w.form.CoverImage = image })
}

// Submit runs the creation sequence: create the subcategory when a new name
// was given, upload the cover image, create the destination, then create its
// guide. A failing step aborts the rest and earlier writes are kept. The
// returned state is also published to observers.
func (w *Wizard) Submit(ctx context.Context, creatorID string) (CreationState, error) {
	w.mu.Lock()
	if _, busy := w.state.(StateLoading); busy {
		state := w.state
		w.mu.Unlock()
		return state, ErrSubmissionInFlight
	}
	if w.closed {
		state := w.state
		w.mu.Unlock()
		return state, ErrClosed
	}
	form := w.form
	if !form.Valid() {
		w.state = StateError{Message: MessageInvalidForm}
		state := w.state
		w.notifyLocked()
		w.mu.Unlock()
		return state, ErrInvalidForm
	}
	w.state = StateLoading{}
	w.notifyLocked()
	w.mu.Unlock()

	destinationID, err := w.run(ctx, form, creatorID)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case err == nil:
		w.state = StateSuccess{DestinationID: destinationID}
	case errors.Is(err, ErrSubcategoryMissing):
		w.state = StateError{Message: MessageSubcategoryMissing}
		err = fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	default:
		w.state = StateError{Message: submissionFailedPrefix + err.Error()}
		err = fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	w.notifyLocked()
	return w.state, err
}

func (w *Wizard) run(ctx context.Context, form Form, creatorID string) (uuid.UUID, error) {
	subcategoryID := form.SubcategoryID
	newName := strings.TrimSpace(form.NewSubcategoryName)
	if newName != "" && subcategoryID == uuid.Nil {
		id, err := w.repo.CreateSubcategory(ctx, domain.Subcategory{
			ParentCategoryID: form.CategoryID,
			Name:             newName,
		})
		if err != nil {
			return uuid.Nil, err
		}
		subcategoryID = id
	}
	if subcategoryID == uuid.Nil {
		return uuid.Nil, ErrSubcategoryMissing
	}

	coverURL, err := w.repo.UploadDestinationCoverImage(ctx, form.CoverImage.upload())
	if err != nil {
		return uuid.Nil, err
	}

	destinationID, err := w.repo.CreateDestination(ctx, domain.Destination{
		SubcategoryID: subcategoryID,
		Name:          strings.TrimSpace(form.DestinationName),
		Latitude:      0,
		Longitude:     0,
		Description:   strings.TrimSpace(form.Description),
		MapURL:        strings.TrimSpace(form.MapURL),
		CoverImageURL: coverURL,
		CreatorID:     creatorID,
	})
	if err != nil {
		return uuid.Nil, err
	}

	err = w.repo.CreateUserGuide(ctx, domain.Guide{
		DestinationID:       destinationID,
		PlacesToSee:         []string{},
		RulesAndRegulations: form.InitialRule,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return destinationID, nil
}

func (w *Wizard) update(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
	w.notifyLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	return Snapshot{
		Form:          w.form,
		Valid:         w.form.Valid(),
		Missing:       w.form.Missing(),
		State:         w.state,
		Status:        Describe(w.state),
		Categories:    append([]domain.Category{}, w.categories...),
		Subcategories: append([]domain.Subcategory{}, w.subcategories...),
		Loading:       w.loading > 0,
		LoadError:     w.loadError,
	}
}

func (w *Wizard) notifyLocked() {
	if len(w.observers) == 0 {
		return
	}
	snap := w.snapshotLocked()
	for _, ch := range w.observers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func containsSubcategory(subs []domain.Subcategory, id uuid.UUID) bool {
	for _, s := range subs {
		if s.ID == id {
			return true
		}
	}
	return false
}

func first[T any](ctx context.Context, ch <-chan domain.Snapshot[T], err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	select {
	case snap, ok := <-ch:
		if !ok {
			return nil, errors.New("stream closed before first snapshot")
		}
		if snap.Err != nil {
			return nil, snap.Err
		}
		if snap.Items == nil {
			return []T{}, nil
		}
		return snap.Items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
