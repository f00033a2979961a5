// Package extract lists the top-level items of a source file and renders a
// single item back out as standalone formatted source.
package extract

import "github.com/phobologic/rsextract/internal/model"

// kindTable maps each named variant to its label. One entry per variant,
// no label repeated.
var kindTable = map[model.Variant]model.Kind{
	model.Function:        model.KindFn,
	model.Struct:          model.KindStruct,
	model.Enum:            model.KindEnum,
	model.Trait:           model.KindTrait,
	model.Const:           model.KindConst,
	model.ExternCrate:     model.KindExternCrate,
	model.Static:          model.KindStatic,
	model.Type:            model.KindType,
	model.Union:           model.KindUnion,
	model.MacroInvocation: model.KindMacro,
}

// Classify returns the catalog entry for d. It reports false for
// declarations without a stable name: model.Other and anonymous macro calls.
func Classify(d model.Decl) (model.Entry, bool) {
	kind, ok := kindTable[d.Variant]
	if !ok || d.Ident == "" {
		return model.Entry{}, false
	}
	return model.Entry{Kind: kind, Name: d.Ident, Line: d.Line}, true
}
