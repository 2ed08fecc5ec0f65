package dispatch

import (
	"fmt"
	"strconv"

	"i4.energy/across/smscmd/cmdparse"
	"i4.energy/across/smscmd/settings"
)

// Command binds a command name to the recipe that parses and applies it.
//
// Apply returns the parse outcome and, on Ok, a short description of
// what was done. It must return CommandNotFound when the command does
// not appear in the line so the dispatcher can try the next one.
type Command struct {
	Name  string
	Apply func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string)
}

// Action is a command without data blocks. fn runs when the command is
// present and its return value is the reply detail.
func Action(name string, fn func() string) Command {
	return Command{
		Name: name,
		Apply: func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string) {
			if o := tok.ParseCommand(name); o != cmdparse.Ok {
				return o, ""
			}
			return cmdparse.Ok, fn()
		},
	}
}

// FloatSetting is "<name> <value>" writing the scalar name in store.
func FloatSetting(store *settings.Store, name string, b cmdparse.Bounds) Command {
	return Command{
		Name: name,
		Apply: func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string) {
			var v float64
			if o := tok.ParseFloat(name, &v, b); o != cmdparse.Ok {
				return o, ""
			}
			if err := store.SetScalar(name, v); err != nil {
				return cmdparse.InvalidData, err.Error()
			}
			return cmdparse.Ok, name + "=" + formatFloat(v)
		},
	}
}

// IntSetting is "<name> <value>" for whole numbers in [min, max].
func IntSetting(store *settings.Store, name string, min, max int64) Command {
	return Command{
		Name: name,
		Apply: func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string) {
			var v int64
			if o := tok.ParseInt(name, &v, min, max); o != cmdparse.Ok {
				return o, ""
			}
			if err := store.SetScalar(name, float64(v)); err != nil {
				return cmdparse.InvalidData, err.Error()
			}
			return cmdparse.Ok, name + "=" + strconv.FormatInt(v, 10)
		},
	}
}

// IndexedFloatSetting is "<name><index> <value>" writing one element of
// the array name in store.
func IndexedFloatSetting(store *settings.Store, name string, b cmdparse.Bounds, indexMin, indexMax int64) Command {
	return Command{
		Name: name,
		Apply: func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string) {
			n, err := store.Len(name)
			if err != nil {
				return cmdparse.InvalidData, err.Error()
			}
			values := make([]float64, n)
			if o := tok.ParseIndexedFloat(name, values, b, indexMin, indexMax); o != cmdparse.Ok {
				return o, ""
			}
			return setElement(store, tok, name, func(i int) float64 { return values[i] })
		},
	}
}

// IndexedIntSetting is IndexedFloatSetting for whole numbers.
func IndexedIntSetting(store *settings.Store, name string, valMin, valMax, indexMin, indexMax int64) Command {
	return Command{
		Name: name,
		Apply: func(tok *cmdparse.Tokenizer) (cmdparse.Outcome, string) {
			n, err := store.Len(name)
			if err != nil {
				return cmdparse.InvalidData, err.Error()
			}
			values := make([]int64, n)
			if o := tok.ParseIndexedInt(name, values, valMin, valMax, indexMin, indexMax); o != cmdparse.Ok {
				return o, ""
			}
			return setElement(store, tok, name, func(i int) float64 { return float64(values[i]) })
		},
	}
}

// setElement copies the element the recipe just validated into store.
// Only that element is written so concurrent commands on other indexes
// are not overwritten.
func setElement(store *settings.Store, tok *cmdparse.Tokenizer, name string, value func(int) float64) (cmdparse.Outcome, string) {
	idx, err := tok.Int(0)
	if err != nil {
		return cmdparse.InvalidData, err.Error()
	}
	v := value(int(idx))
	if err := store.SetElement(name, int(idx), v); err != nil {
		return cmdparse.InvalidData, err.Error()
	}
	return cmdparse.Ok, fmt.Sprintf("%s[%d]=%s", name, idx, formatFloat(v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
