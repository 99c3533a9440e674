// File path: internal/corpus/collections.go

// Package corpus owns the nine hadith collections: their identifiers, the
// canonical record shape and the loading of raw collection documents.
package corpus

import (
	"strings"
)

// Collection identifies one of the nine supported hadith collections.
type Collection string

const (
	Bukhari  Collection = "bukhari"
	Muslim   Collection = "muslim"
	AbuDawud Collection = "abudawud"
	Tirmidhi Collection = "tirmidhi"
	Nasai    Collection = "nasai"
	IbnMajah Collection = "ibnmajah"
	Malik    Collection = "malik"
	Ahmad    Collection = "ahmad"
	Darimi   Collection = "darimi"
)

var collections = []Collection{Bukhari, Muslim, AbuDawud, Tirmidhi, Nasai, IbnMajah, Malik, Ahmad, Darimi}

var displayNames = map[Collection]string{
	Bukhari:  "Sahih al-Bukhari",
	Muslim:   "Sahih Muslim",
	AbuDawud: "Sunan Abi Dawud",
	Tirmidhi: "Jami at-Tirmidhi",
	Nasai:    "Sunan an-Nasai",
	IbnMajah: "Sunan Ibn Majah",
	Malik:    "Muwatta Malik",
	Ahmad:    "Musnad Ahmad",
	Darimi:   "Sunan ad-Darimi",
}

// aliases maps loose spellings seen in client input to a collection,
// checked in order.
var aliases = []struct {
	alias      string
	collection Collection
}{
	{"al-bukhari", Bukhari},
	{"sahih bukhari", Bukhari},
	{"sahih muslim", Muslim},
	{"abu dawud", AbuDawud},
	{"abi dawud", AbuDawud},
	{"abu daud", AbuDawud},
	{"tirmidhi", Tirmidhi},
	{"nasa'i", Nasai},
	{"ibn majah", IbnMajah},
	{"muwatta", Malik},
	{"musnad ahmad", Ahmad},
	{"darimi", Darimi},
}

// All returns the supported collections in their canonical order.
func All() []Collection {
	return append([]Collection(nil), collections...)
}

// DisplayName returns the human readable collection name.
func (c Collection) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether c is one of the nine collections.
func (c Collection) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// ParseCollection resolves a key, display name or common alias,
// case-insensitively.
func ParseCollection(value string) (Collection, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", false
	}
	if c := Collection(trimmed); c.Valid() {
		return c, true
	}
	for _, c := range collections {
		if strings.ToLower(c.DisplayName()) == trimmed {
			return c, true
		}
	}
	for _, a := range aliases {
		if strings.Contains(trimmed, a.alias) {
			return a.collection, true
		}
	}
	for _, c := range collections {
		if strings.Contains(trimmed, string(c)) {
			return c, true
		}
	}
	return "", false
}
