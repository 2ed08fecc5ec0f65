package cmdparse

// ParseCommand reports whether command appears in the line. No data
// blocks are read.
func (t *Tokenizer) ParseCommand(command string) Outcome {
	return t.Parse(command, 0)
}

// ParseInt reads one integer block after command into out. out is only
// written when the outcome is Ok.
func (t *Tokenizer) ParseInt(command string, out *int64, min, max int64) Outcome {
	if o := t.Parse(command, 1); o != Ok {
		return o
	}
	v, err := t.CheckedInt(0, min, max)
	if err != nil {
		return InvalidData
	}
	*out = v
	return Ok
}

// ParseFloat reads one float block after command into out. out is only
// written when the outcome is Ok.
func (t *Tokenizer) ParseFloat(command string, out *float64, b Bounds) Outcome {
	if o := t.Parse(command, 1); o != Ok {
		return o
	}
	v, err := t.CheckedFloat(0, b)
	if err != nil {
		return InvalidData
	}
	*out = v
	return Ok
}

// ParseIndexedFloat reads "<command><index> <value>" and stores value
// into values[index].
//
// The index must be an integer in [indexMin, indexMax] and below
// len(values); the value must satisfy valBounds.
func (t *Tokenizer) ParseIndexedFloat(command string, values []float64, valBounds Bounds, indexMin, indexMax int64) Outcome {
	idx, o := t.parseIndex(command, len(values), indexMin, indexMax)
	if o != Ok {
		return o
	}
	v, err := t.CheckedFloat(1, valBounds)
	if err != nil {
		return InvalidData
	}
	values[idx] = v
	return Ok
}

// ParseIndexedInt is ParseIndexedFloat for integer arrays.
func (t *Tokenizer) ParseIndexedInt(command string, values []int64, valMin, valMax, indexMin, indexMax int64) Outcome {
	idx, o := t.parseIndex(command, len(values), indexMin, indexMax)
	if o != Ok {
		return o
	}
	v, err := t.CheckedInt(1, valMin, valMax)
	if err != nil {
		return InvalidData
	}
	values[idx] = v
	return Ok
}

func (t *Tokenizer) parseIndex(command string, n int, indexMin, indexMax int64) (int, Outcome) {
	if o := t.Parse(command, 2); o != Ok {
		return 0, o
	}
	idx, err := t.CheckedInt(0, indexMin, indexMax)
	if err != nil {
		return 0, InvalidData
	}
	if idx < 0 || idx > int64(n)-1 {
		return 0, InvalidData
	}
	return int(idx), Ok
}
