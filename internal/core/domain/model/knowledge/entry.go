// Package knowledge provides the knowledge base entry model and the
// deterministic relevance ranking used for retrieval. Entries hold policy and
// procedure texts keyed by category and keywords; the core only ever reads
// them.
package knowledge

import (
	"errors"
	"strings"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry factory method.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is a single knowledge base article: a titled body of guidance filed
// under a category ("routing", "technical_support", ...) with lookup keywords.
//
// Entries are immutable from the core's perspective; the Knowledge Store owns
// their lifecycle.
type Entry struct {
	id        kernel.UUID
	category  string
	title     string
	body      string
	keywords  []string
	updatedAt time.Time

	isConstructed bool
}

// NewEntry creates a knowledge entry with validation.
// Category, title, and body are required; keywords are normalized to lower case.
func NewEntry(
	id kernel.UUID,
	category string,
	title string,
	body string,
	keywords []string,
	updatedAt time.Time,
) (*Entry, error) {
	e := &Entry{
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setCategory(category),
		e.setTitle(title),
		e.setBody(body),
	); err != nil {
		return nil, err
	}

	e.keywords = make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			e.keywords = append(e.keywords, kw)
		}
	}

	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Category returns the operational domain the entry is filed under.
func (e *Entry) Category() string {
	return e.category
}

// Title returns the entry title.
func (e *Entry) Title() string {
	return e.title
}

// Body returns the full guidance text.
func (e *Entry) Body() string {
	return e.body
}

// Keywords returns the normalized lookup keywords.
func (e *Entry) Keywords() []string {
	return e.keywords
}

// UpdatedAt returns when the entry was last revised. Used as the ranking
// tie-breaker so fresher guidance wins.
func (e *Entry) UpdatedAt() time.Time {
	return e.updatedAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setCategory(category string) error {
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	e.category = strings.ToLower(category)
	return nil
}

func (e *Entry) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	e.title = title
	return nil
}

func (e *Entry) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	e.body = body
	return nil
}
