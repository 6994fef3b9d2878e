// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package comgr

import (
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/status"
	"github.com/gx-org/comgr/symtab"
)

// SymbolInfo selects the symbol attribute queried by SymbolGetInfo.
type SymbolInfo int

const (
	// SymbolInfoNameLength is the length of the symbol name in bytes, not
	// counting the NUL terminator. Queried into a *uint64.
	SymbolInfoNameLength SymbolInfo = iota
	// SymbolInfoName is the NUL-terminated name of the symbol. Queried into
	// a []byte of at least name length plus one bytes.
	SymbolInfoName
	// SymbolInfoType is the type of the symbol. Queried into a *symtab.Type.
	SymbolInfoType
	// SymbolInfoSize is the size of a variable symbol. Queried into a
	// *uint64.
	SymbolInfoSize
	// SymbolInfoIsUndefined reports whether the symbol is undefined.
	// Queried into a *bool.
	SymbolInfoIsUndefined
	// SymbolInfoValue is the value of the symbol. Queried into a *uint64.
	SymbolInfoValue
)

func resolveSymbol(s Symbol) (*symtab.Symbol, error) {
	sym, err := resolve[*symtab.Symbol](uint64(s), "symbol")
	if err != nil {
		return nil, err
	}
	if !sym.Owner().Alive() {
		return nil, status.InvalidArgumentf("symbol handle %d outlived its machine code object", s)
	}
	return sym, nil
}

// IterateSymbols calls fn once per symbol of a machine code object, in
// table order: the static symbol table of a relocatable, the dynamic symbol
// table of an executable. The symbol handle passed to fn is only valid
// inside the callback body. A non-nil error returned by fn stops the
// iteration and is reported to the caller as Error.
func IterateSymbols(d Data, fn func(Symbol) error) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	if fn == nil {
		return status.InvalidArgumentf("an iteration callback is required")
	}
	table, err := symtab.Load(o)
	if err != nil {
		return err
	}
	for sym := range table.Iter() {
		h := handle.Wrap(sym)
		fnErr := fn(Symbol(h))
		handle.Release(h)
		if fnErr != nil {
			return status.Errorf("symbol iteration stopped: %v", fnErr)
		}
	}
	return nil
}

// SymbolLookup returns the symbol of a machine code object with the given
// exact name. The returned handle stays valid until the data object is
// destroyed. A name with no symbol reports Error.
func SymbolLookup(d Data, name string) (Symbol, error) {
	o, err := resolveData(d)
	if err != nil {
		return 0, err
	}
	table, err := symtab.Load(o)
	if err != nil {
		return 0, err
	}
	sym, err := table.Lookup(name)
	if err != nil {
		return 0, err
	}
	h := handle.Wrap(sym)
	o.OnDestroy(func() { handle.Release(h) })
	return Symbol(h), nil
}

// SymbolGetInfo copies one attribute of a symbol into value. The required
// type of value depends on the attribute; see the SymbolInfo constants.
func SymbolGetInfo(s Symbol, attribute SymbolInfo, value any) error {
	sym, err := resolveSymbol(s)
	if err != nil {
		return err
	}
	switch attribute {
	case SymbolInfoNameLength:
		return storeUint64(value, uint64(len(sym.Name)))
	case SymbolInfoName:
		buf, ok := value.([]byte)
		if !ok {
			return status.InvalidArgumentf("symbol name attribute requires a byte buffer")
		}
		copy(buf, append([]byte(sym.Name), 0))
		return nil
	case SymbolInfoType:
		t, ok := value.(*symtab.Type)
		if !ok {
			return status.InvalidArgumentf("symbol type attribute requires a *symtab.Type")
		}
		*t = sym.Type
		return nil
	case SymbolInfoSize:
		return storeUint64(value, sym.Size)
	case SymbolInfoIsUndefined:
		b, ok := value.(*bool)
		if !ok {
			return status.InvalidArgumentf("symbol is-undefined attribute requires a *bool")
		}
		*b = sym.Undefined
		return nil
	case SymbolInfoValue:
		return storeUint64(value, sym.Value)
	}
	return status.InvalidArgumentf("invalid symbol attribute %d", attribute)
}

func storeUint64(value any, v uint64) error {
	p, ok := value.(*uint64)
	if !ok {
		return status.InvalidArgumentf("symbol attribute requires a *uint64")
	}
	*p = v
	return nil
}
