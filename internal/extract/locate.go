package extract

import "github.com/phobologic/rsextract/internal/model"

// Locate returns the first declaration, in source order, whose kind and
// name equal the request exactly. Later declarations with the same kind
// and name are ignored.
func Locate(decls []model.Decl, kind model.Kind, name string) (model.Decl, bool) {
	for _, d := range decls {
		e, ok := Classify(d)
		if !ok {
			continue
		}
		if e.Kind == kind && e.Name == name {
			return d, true
		}
	}
	return model.Decl{}, false
}
