package cmdparse_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/smscmd/cmdparse"
)

func TestFindCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		command string
		pos     int
		found   bool
	}{
		{name: "Exact match", line: "Min2 10.5", command: "Min2", pos: 0, found: true},
		{name: "Lower case in line", line: "min2 10.5", command: "Min2", pos: 0, found: true},
		{name: "Upper case in line", line: "Min2 10.5", command: "min2", pos: 0, found: true},
		{name: "Match inside text", line: "set tmax 30", command: "tmax", pos: 4, found: true},
		{name: "Only first letter is folded", line: "MIN2 10", command: "min2", found: false},
		{name: "Absent", line: "Foo 1 2", command: "Bar", found: false},
		{name: "After newline", line: "junk\nMin2 1", command: "Min2", pos: 5, found: true},
		{name: "Not past NUL", line: "junk\x00Min2 1", command: "Min2", found: false},
		{name: "Non letter first char", line: "#reset", command: "#reset", pos: 0, found: true},
		{name: "Empty command", line: "anything", command: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := cmdparse.FindCommand(tt.line, tt.command)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.pos, pos)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		command  string
		expected int
		outcome  cmdparse.Outcome
		found    int
		tokens   []string
	}{
		{
			name: "Single value", line: "Min2 10.5", command: "Min2", expected: 1,
			outcome: cmdparse.Ok, found: 1, tokens: []string{"10.5"},
		},
		{
			name: "Command without data", line: "Min2", command: "Min2", expected: 1,
			outcome: cmdparse.NotEnoughData, found: 0, tokens: []string{},
		},
		{
			name: "Command not found", line: "Foo 1 2", command: "Bar", expected: 1,
			outcome: cmdparse.CommandNotFound, found: 0, tokens: []string{},
		},
		{
			name: "Case folded command", line: "Min2 10.5", command: "min2", expected: 1,
			outcome: cmdparse.Ok, found: 1, tokens: []string{"10.5"},
		},
		{
			name: "Repeated spaces", line: "min2   10.5", command: "min2", expected: 1,
			outcome: cmdparse.Ok, found: 1, tokens: []string{"10.5"},
		},
		{
			name: "Value glued to command", line: "tmin1 12.5", command: "tmin", expected: 2,
			outcome: cmdparse.Ok, found: 2, tokens: []string{"1", "12.5"},
		},
		{
			name: "Extra blocks are not scanned", line: "cmd 1 2 3", command: "cmd", expected: 2,
			outcome: cmdparse.Ok, found: 2, tokens: []string{"1", "2"},
		},
		{
			name: "Too few blocks", line: "cmd a", command: "cmd", expected: 3,
			outcome: cmdparse.NotEnoughData, found: 1, tokens: []string{"a"},
		},
		{
			name: "Trailing spaces then CRLF", line: "cmd a  \r\n", command: "cmd", expected: 2,
			outcome: cmdparse.NotEnoughData, found: 1, tokens: []string{"a"},
		},
		{
			name: "Token ends at CR", line: "cmd a b\r\n", command: "cmd", expected: 2,
			outcome: cmdparse.Ok, found: 2, tokens: []string{"a", "b"},
		},
		{
			name: "Newline ends the data", line: "cmd a\nb", command: "cmd", expected: 2,
			outcome: cmdparse.NotEnoughData, found: 1, tokens: []string{"a"},
		},
		{
			name: "NUL ends the data", line: "cmd 5\x00 6", command: "cmd", expected: 2,
			outcome: cmdparse.NotEnoughData, found: 1, tokens: []string{"5"},
		},
		{
			name: "Tab is not a delimiter", line: "cmd\ta b", command: "cmd", expected: 2,
			outcome: cmdparse.Ok, found: 2, tokens: []string{"\ta", "b"},
		},
		{
			name: "Leading text before command", line: "please set Max 7", command: "max", expected: 1,
			outcome: cmdparse.Ok, found: 1, tokens: []string{"7"},
		},
		{
			name: "Command only mode", line: "status now", command: "status", expected: 0,
			outcome: cmdparse.Ok, found: 0, tokens: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := cmdparse.New(tt.line)
			outcome := tok.Parse(tt.command, tt.expected)

			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.found, tok.Found())
			assert.Equal(t, tt.tokens, tok.Tokens())
			assert.LessOrEqual(t, tok.Len(), tt.expected)
		})
	}
}

func TestParseCaseInsensitivityIsSymmetric(t *testing.T) {
	a := cmdparse.New("Min2 10.5")
	b := cmdparse.New("min2 10.5")

	require.Equal(t, cmdparse.Ok, a.Parse("min2", 1))
	require.Equal(t, cmdparse.Ok, b.Parse("Min2", 1))
	assert.Equal(t, a.Tokens(), b.Tokens())
}

func TestReparseDropsPreviousTokens(t *testing.T) {
	tok := cmdparse.New("alpha 1 2 beta 3")

	require.Equal(t, cmdparse.Ok, tok.Parse("alpha", 2))
	require.Equal(t, []string{"1", "2"}, tok.Tokens())

	assert.Equal(t, cmdparse.CommandNotFound, tok.Parse("gamma", 1))
	assert.Equal(t, 0, tok.Len())
	assert.Equal(t, 0, tok.Found())

	require.Equal(t, cmdparse.Ok, tok.Parse("beta", 1))
	assert.Equal(t, []string{"3"}, tok.Tokens())

	tok.Reset("delta 9")
	assert.Equal(t, 0, tok.Len())
	require.Equal(t, cmdparse.Ok, tok.Parse("delta", 1))
	assert.Equal(t, []string{"9"}, tok.Tokens())
}

func TestTokensAreIndependentCopies(t *testing.T) {
	tok := cmdparse.New("cmd abc")
	require.Equal(t, cmdparse.Ok, tok.Parse("cmd", 1))

	tokens := tok.Tokens()
	tokens[0] = "changed"

	got, err := tok.Token(0)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

// Random lines built from known blocks separated by runs of spaces must
// split back into those blocks.
func TestParseRecoversBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := "abcXYZ0123456789.-+\t"

	for i := 0; i < 200; i++ {
		n := rng.Intn(5)
		blocks := make([]string, n)
		var b strings.Builder
		b.WriteString("cmd")
		for j := range blocks {
			size := 1 + rng.Intn(6)
			var blk strings.Builder
			for k := 0; k < size; k++ {
				blk.WriteByte(alphabet[rng.Intn(len(alphabet))])
			}
			blocks[j] = blk.String()
			b.WriteString(strings.Repeat(" ", 1+rng.Intn(3)))
			b.WriteString(blocks[j])
		}
		b.WriteString(strings.Repeat(" ", rng.Intn(3)))
		line := b.String()

		expected := rng.Intn(6)
		tok := cmdparse.New(line)
		outcome := tok.Parse("cmd", expected)

		switch {
		case expected == 0:
			assert.Equal(t, cmdparse.Ok, outcome, line)
			assert.Equal(t, 0, tok.Len(), line)
		case n < expected:
			assert.Equal(t, cmdparse.NotEnoughData, outcome, line)
			assert.Equal(t, n, tok.Found(), line)
			assert.Equal(t, blocks, tok.Tokens(), line)
		default:
			assert.Equal(t, cmdparse.Ok, outcome, line)
			assert.Equal(t, expected, tok.Found(), line)
			assert.Equal(t, blocks[:expected], tok.Tokens(), line)
		}
	}
}

func TestOutcome(t *testing.T) {
	assert.NoError(t, cmdparse.Ok.Err())
	assert.ErrorIs(t, cmdparse.CommandNotFound.Err(), cmdparse.ErrCommandNotFound)
	assert.ErrorIs(t, cmdparse.NotEnoughData.Err(), cmdparse.ErrNotEnoughData)
	assert.ErrorIs(t, cmdparse.InvalidData.Err(), cmdparse.ErrInvalidData)

	assert.Less(t, int(cmdparse.CommandNotFound), int(cmdparse.NotEnoughData))
	assert.Less(t, int(cmdparse.NotEnoughData), int(cmdparse.InvalidData))
	assert.Less(t, int(cmdparse.InvalidData), int(cmdparse.Ok))
	assert.Equal(t, "not enough data", cmdparse.NotEnoughData.String())
}

func BenchmarkParse(b *testing.B) {
	tok := cmdparse.New("sms from +306900000000: tmin3   21.5  extra")
	for i := 0; i < b.N; i++ {
		tok.Parse("tmin", 2)
	}
}
