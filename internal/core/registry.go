package core

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

const PlaceholderIDPrefix = "_s-"

var (
	unitNamePattern = regexp.MustCompile(`/(\w+\.vue)`)
	styleIDPattern  = regexp.MustCompile(`\.css$`)
)

type ExtractionRecord struct {
	UnitName          string
	PlaceholderID     string
	PlaceholderMarker string
	StyleText         string
}

// UnitNameFor returns the component file name a unit identity was split
// from. Units in different directories sharing a base name map to the same
// name.
func UnitNameFor(id string) (string, bool) {
	m := unitNamePattern.FindStringSubmatch(strings.ReplaceAll(id, "\\", "/"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func IsStyleUnit(id string) bool {
	return styleIDPattern.MatchString(id)
}

func PlaceholderMarkerFor(placeholderID string) string {
	return "console.warn('__###" + placeholderID + "###__')"
}

type Registry struct {
	mu      sync.Mutex
	records map[string]*ExtractionRecord
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*ExtractionRecord)}
}

// Ensure returns the record for unitName, creating it with a freshly issued
// placeholder id on first sight.
func (r *Registry) Ensure(unitName string, issue func() (string, error)) (ExtractionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[unitName]; ok {
		return *rec, nil
	}

	token, err := issue()
	if err != nil {
		return ExtractionRecord{}, err
	}

	rec := &ExtractionRecord{
		UnitName:      unitName,
		PlaceholderID: PlaceholderIDPrefix + token,
	}
	r.records[unitName] = rec
	return *rec, nil
}

func (r *Registry) SetStyle(unitName, styleText string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[unitName]; ok {
		rec.StyleText = styleText
	}
}

// Marker returns the placeholder marker for unitName, building it on first use.
func (r *Registry) Marker(unitName string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[unitName]
	if !ok {
		return ""
	}
	if rec.PlaceholderMarker == "" {
		rec.PlaceholderMarker = PlaceholderMarkerFor(rec.PlaceholderID)
	}
	return rec.PlaceholderMarker
}

func (r *Registry) Get(unitName string) (ExtractionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[unitName]
	if !ok {
		return ExtractionRecord{}, false
	}
	return *rec, true
}

func (r *Registry) Records() []ExtractionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ExtractionRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UnitName < out[j].UnitName
	})
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
