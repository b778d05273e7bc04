package model

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;index"`
	Slug string `gorm:"size:255;not null;uniqueIndex"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;index"`
	Slug string `gorm:"size:255;not null;uniqueIndex"`
}

// Category is an age rating such as "12+". A movie has at most one.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null;index"`
	Slug string `gorm:"size:255;not null;uniqueIndex"`
}

type Director struct {
	ID      uint             `gorm:"primaryKey"`
	Name    string           `gorm:"size:150;not null"`
	Slug    string           `gorm:"size:255;not null;uniqueIndex"`
	Profile *DirectorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type DirectorProfile struct {
	ID         uint       `gorm:"primaryKey"`
	DirectorID uint       `gorm:"not null;uniqueIndex"`
	Bio        string     `gorm:"type:text"`
	Birthday   *time.Time `gorm:"type:date"`
}

type Actor struct {
	ID      uint          `gorm:"primaryKey"`
	Name    string        `gorm:"size:150;not null"`
	Slug    string        `gorm:"size:255;not null;uniqueIndex"`
	Profile *ActorProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type ActorProfile struct {
	ID       uint       `gorm:"primaryKey"`
	ActorID  uint       `gorm:"not null;uniqueIndex"`
	Bio      string     `gorm:"type:text"`
	Birthday *time.Time `gorm:"type:date"`
}

type Movie struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Year        *int
	// Poster is a path relative to the media root, e.g. "posters/<uuid>.jpg".
	Poster      string    `gorm:"size:255"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	IsPublished bool      `gorm:"not null;index"`

	Tags      []Tag      `gorm:"many2many:movie_tags;constraint:OnDelete:CASCADE;"`
	Genres    []Genre    `gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Directors []Director `gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE;"`
	Actors    []Actor    `gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
}

// Join tables of the movie many-to-many relations.
const (
	MovieTagsTable      = "movie_tags"
	MovieGenresTable    = "movie_genres"
	MovieDirectorsTable = "movie_directors"
	MovieActorsTable    = "movie_actors"
)

// AllModels lists every model in migration order.
func AllModels() []any {
	return []any{
		&Tag{}, &Genre{}, &Category{},
		&Director{}, &DirectorProfile{},
		&Actor{}, &ActorProfile{},
		&Movie{},
	}
}

// MakeSlug derives the URL identifier stored for a name.
func MakeSlug(name string) string {
	return slug.Make(name)
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = MakeSlug(t.Name)
	}
	return nil
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.Slug == "" {
		g.Slug = MakeSlug(g.Name)
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = MakeSlug(c.Name)
	}
	return nil
}

func (d *Director) BeforeCreate(tx *gorm.DB) error {
	if d.Slug == "" {
		d.Slug = MakeSlug(d.Name)
	}
	return nil
}

func (a *Actor) BeforeCreate(tx *gorm.DB) error {
	if a.Slug == "" {
		a.Slug = MakeSlug(a.Name)
	}
	return nil
}
