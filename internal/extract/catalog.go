package extract

import "github.com/phobologic/rsextract/internal/model"

// BuildCatalog classifies decls in source order. Duplicates are kept.
func BuildCatalog(decls []model.Decl) []model.Entry {
	entries := make([]model.Entry, 0, len(decls))
	for _, d := range decls {
		if e, ok := Classify(d); ok {
			entries = append(entries, e)
		}
	}
	return entries
}
