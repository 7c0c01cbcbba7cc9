package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/akhildatla/bfvm/pkg/vm"
)

func TestCompile_Empty(t *testing.T) {
	for _, src := range []string{"", "no instructions here", "\n\t  "} {
		program, err := Compile(src)
		if err != nil {
			t.Fatalf("Compile(%q) failed: %v", src, err)
		}
		if program.Len() != 0 {
			t.Errorf("Compile(%q): expected empty program, got %d instructions", src, program.Len())
		}
	}
}

func TestCompile_NoLoops(t *testing.T) {
	program, err := Compile("+ asdasdas +++.")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if program.Source() != "++++." {
		t.Errorf("expected %q, got %q", "++++.", program.Source())
	}
	for i, inst := range program.Code {
		if inst.Target != 0 {
			t.Errorf("instruction %d: expected zero target, got %d", i, inst.Target)
		}
	}
}

func TestCompile_LoopResolution(t *testing.T) {
	tests := []struct {
		source string
		pairs  map[int]int // loop start index -> loop stop index
	}{
		{"[]", map[int]int{0: 1}},
		{"+[-]", map[int]int{1: 3}},
		{"[[]]", map[int]int{0: 3, 1: 2}},
		{"[][]", map[int]int{0: 1, 2: 3}},
		{"[>[<]+[-]]", map[int]int{0: 9, 2: 4, 6: 8}},
		{"[[[[[[]]]]]]", map[int]int{0: 11, 1: 10, 2: 9, 3: 8, 4: 7, 5: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			program, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			for start, stop := range tt.pairs {
				if program.Code[start].Op != vm.OpLoopStart || program.Code[start].Target != stop {
					t.Errorf("instruction %d: expected LOOP_START %d, got %v", start, stop, program.Code[start])
				}
				if program.Code[stop].Op != vm.OpLoopStop || program.Code[stop].Target != start {
					t.Errorf("instruction %d: expected LOOP_STOP %d, got %v", stop, start, program.Code[stop])
				}
			}
		})
	}
}

func TestCompile_DeepNesting(t *testing.T) {
	const depth = 500
	src := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	program, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for i := 0; i < depth; i++ {
		j := 2*depth - 1 - i
		if program.Code[i].Target != j || program.Code[j].Target != i {
			t.Fatalf("pair %d/%d not resolved: %v / %v", i, j, program.Code[i], program.Code[j])
		}
	}
}

func TestCompile_NoUnresolvedTargets(t *testing.T) {
	program, err := Compile("++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for i, inst := range program.Code {
		if inst.Op.IsLoop() && inst.Target == vm.Unresolved {
			t.Errorf("instruction %d left unresolved", i)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		source string
		kind   error
		index  int
		line   int
		column int
	}{
		{">[>", ErrLoopStartUnbalanced, 1, 1, 2},
		{"[]]", ErrLoopStopUnbalanced, 2, 1, 3},
		{"]", ErrLoopStopUnbalanced, 0, 1, 1},
		{"[[]", ErrLoopStartUnbalanced, 0, 1, 1},
		{"[ [ ]", ErrLoopStartUnbalanced, 0, 1, 1},
		{"+[\n[]\n[", ErrLoopStartUnbalanced, 1, 1, 2},
		{"comment ] after", ErrLoopStopUnbalanced, 0, 1, 9},
		{"][", ErrLoopStopUnbalanced, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			program, err := Compile(tt.source)
			if err == nil {
				t.Fatalf("expected error, got program %q", program.Source())
			}
			if program != nil {
				t.Errorf("expected no program on error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if cerr.Index != tt.index {
				t.Errorf("expected index %d, got %d", tt.index, cerr.Index)
			}
			if cerr.Pos.Line != tt.line || cerr.Pos.Column != tt.column {
				t.Errorf("expected %d:%d, got %d:%d", tt.line, tt.column, cerr.Pos.Line, cerr.Pos.Column)
			}
		})
	}
}

func TestCompile_ErrorIndexIgnoresComments(t *testing.T) {
	_, err := Compile("abc > def [ ghi >")
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if cerr.Index != 1 {
		t.Errorf("expected filtered index 1, got %d", cerr.Index)
	}
	if cerr.Pos.Offset != 10 {
		t.Errorf("expected source offset 10, got %d", cerr.Pos.Offset)
	}
}

func TestCompile_Positions(t *testing.T) {
	program, err := Compile("+\n +")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	pos, ok := program.PositionOf(1)
	if !ok {
		t.Fatal("expected position for instruction 1")
	}
	if pos.Line != 2 || pos.Column != 2 {
		t.Errorf("expected 2:2, got %d:%d", pos.Line, pos.Column)
	}
	if _, ok := program.PositionOf(2); ok {
		t.Error("expected no position past the end")
	}
}

func TestCompile_Annotated(t *testing.T) {
	program, err := Compile("+[>[-]<]")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	expected := "+[7>[5-3]<1]"
	if got := program.Annotated(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
