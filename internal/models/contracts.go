package models

import "time"

// GamesQuery parameterizes month-scoped catalog reads. Month must be
// normalized to the first day of its month before use; Platforms and Tags
// are optional filter sets matched case-insensitively.
type GamesQuery struct {
	Month     time.Time
	Platforms []string
	Tags      []string
}

// GenreAgg is one group of the single-month top-genres aggregate.
type GenreAgg struct {
	Genre        string  `json:"genre"`
	Games        int     `json:"games"`
	AvgFollowers float64 `json:"avgFollowers"`
}

// GenreMonthAgg is one (genre, month) cell of the multi-month aggregate.
// Month is normalized to the first day of the month.
type GenreMonthAgg struct {
	Genre        string
	Month        time.Time
	Games        int
	AvgFollowers float64
}

// SnapshotRow is one denormalized fact row appended to the analytics store.
// A game with N tags expands into N rows per snapshot; rows are immutable.
type SnapshotRow struct {
	AppID       int64
	Name        string
	Genre       string
	Followers   int
	ReleaseDate time.Time
}

// CalendarDay is one day of the month calendar: a release date and the
// number of games releasing on it.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GenreSeries carries one genre's per-month values, parallel to
// GenreDynamics.Months.
type GenreSeries struct {
	Genre        string `json:"genre"`
	Counts       []int  `json:"counts"`
	AvgFollowers []int  `json:"avgFollowers"`
}

// GenreDynamics is the typed result of the multi-month dynamics query:
// a month skeleton plus one series per selected genre. Cells without data
// hold zeroes rather than being omitted.
type GenreDynamics struct {
	Months []string      `json:"months"`
	Series []GenreSeries `json:"genres"`
}
