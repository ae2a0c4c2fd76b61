package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies a script operation.
type Kind uint8

// Script operations.
const (
	KindAlloc Kind = iota + 1
	KindCalloc
	KindRealloc
	KindFree
	KindCheck
)

func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindCalloc:
		return "calloc"
	case KindRealloc:
		return "realloc"
	case KindFree:
		return "free"
	case KindCheck:
		return "check"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// nilName stands for the null handle in realloc and free.
const nilName = "nil"

// Op is one parsed script line.
type Op struct {
	Line  int    // 1-based source line
	Kind  Kind
	Dst   string // bound name for alloc, calloc and realloc
	Src   string // handle operand for realloc and free; "nil" is the null handle
	Count uint64 // calloc element count
	Size  uint64 // requested bytes (element size for calloc)
}

func (op Op) String() string {
	switch op.Kind {
	case KindAlloc:
		return fmt.Sprintf("%s = alloc %d", op.Dst, op.Size)
	case KindCalloc:
		return fmt.Sprintf("%s = calloc %d %d", op.Dst, op.Count, op.Size)
	case KindRealloc:
		return fmt.Sprintf("%s = realloc %s %d", op.Dst, op.Src, op.Size)
	case KindFree:
		return "free " + op.Src
	case KindCheck:
		return "check"
	}
	return op.Kind.String()
}

// Parse reads a script from r.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read script: %w", err)
	}
	return ops, nil
}

// ParseString parses a script held in memory.
func ParseString(s string) ([]Op, error) {
	return Parse(strings.NewReader(s))
}

func parseOp(f []string) (Op, error) {
	switch f[0] {
	case "check":
		if len(f) != 1 {
			return Op{}, fmt.Errorf("%w: check takes no operands", ErrSyntax)
		}
		return Op{Kind: KindCheck}, nil
	case "free":
		if len(f) != 2 {
			return Op{}, fmt.Errorf("%w: usage: free NAME", ErrSyntax)
		}
		if err := checkName(f[1], true); err != nil {
			return Op{}, err
		}
		return Op{Kind: KindFree, Src: f[1]}, nil
	}

	if len(f) < 3 || f[1] != "=" {
		return Op{}, fmt.Errorf("%w: unknown statement %q", ErrSyntax, strings.Join(f, " "))
	}
	if err := checkName(f[0], false); err != nil {
		return Op{}, err
	}
	op := Op{Dst: f[0]}
	args := f[3:]
	var err error
	switch f[2] {
	case "alloc":
		op.Kind = KindAlloc
		if len(args) != 1 {
			return Op{}, fmt.Errorf("%w: usage: NAME = alloc SIZE", ErrSyntax)
		}
		op.Size, err = parseSize(args[0])
	case "calloc":
		op.Kind = KindCalloc
		if len(args) != 2 {
			return Op{}, fmt.Errorf("%w: usage: NAME = calloc COUNT SIZE", ErrSyntax)
		}
		if op.Count, err = parseSize(args[0]); err == nil {
			op.Size, err = parseSize(args[1])
		}
	case "realloc":
		op.Kind = KindRealloc
		if len(args) != 2 {
			return Op{}, fmt.Errorf("%w: usage: NAME = realloc NAME SIZE", ErrSyntax)
		}
		if err = checkName(args[0], true); err == nil {
			op.Src = args[0]
			op.Size, err = parseSize(args[1])
		}
	default:
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, f[2])
	}
	if err != nil {
		return Op{}, err
	}
	return op, nil
}

func parseSize(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad size %q", ErrSyntax, s)
	}
	return n, nil
}

func checkName(s string, allowNil bool) error {
	if s == nilName {
		if allowNil {
			return nil
		}
		return fmt.Errorf("%w: cannot bind %q", ErrSyntax, s)
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return fmt.Errorf("%w: bad name %q", ErrSyntax, s)
		}
	}
	return nil
}
