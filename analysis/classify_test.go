package analysis

import (
	"testing"

	"github.com/seabrook/evalload/bytecode"
)

func evalClass(m *bytecode.Method) *bytecode.Class {
	return &bytecode.Class{Name: "Eval", Methods: []*bytecode.Method{m}}
}

func TestClassifyBackwardJump(t *testing.T) {
	b := bytecode.NewStreamBuilder()
	loop := b.NewLabel()
	b.Mark(loop)
	b.Op(0x84) // iinc
	b.Jump(bytecode.OpGoto, loop)

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if !f.BackwardJump {
		t.Error("jump to an already-visited label should flag BackwardJump")
	}
	if f.Unsupported || f.Auxiliary {
		t.Errorf("unexpected flags: %+v", f)
	}
	if !f.RequiresLoading() {
		t.Error("a backward jump should force the loading path")
	}
}

func TestClassifyForwardJumpOnly(t *testing.T) {
	b := bytecode.NewStreamBuilder()
	skip := b.NewLabel()
	b.Jump(bytecode.OpIfEq, skip)
	b.Op(0x04) // iconst_1
	b.Mark(skip)
	b.Op(0xb1) // return

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if f.BackwardJump {
		t.Error("forward-only control flow must not flag BackwardJump")
	}
	if f.RequiresLoading() {
		t.Error("forward-only control flow should stay interpretable")
	}
}

func TestClassifyTableSwitch(t *testing.T) {
	b := bytecode.NewStreamBuilder()
	def := b.NewLabel()
	c1 := b.NewLabel()
	b.TableSwitch(0, 0, def, c1)
	b.Mark(c1)
	b.Mark(def)

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if !f.Unsupported {
		t.Error("tableswitch should flag Unsupported")
	}
	if f.BackwardJump {
		t.Error("no backward jump present")
	}
}

func TestClassifyLookupSwitch(t *testing.T) {
	b := bytecode.NewStreamBuilder()
	def := b.NewLabel()
	c1 := b.NewLabel()
	b.LookupSwitch([]int32{7}, def, c1)
	b.Mark(c1)
	b.Mark(def)

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if !f.Unsupported {
		t.Error("lookupswitch should flag Unsupported")
	}
}

func TestClassifyMonitorOps(t *testing.T) {
	for _, op := range []bytecode.Opcode{bytecode.OpMonitorEnter, bytecode.OpMonitorExit} {
		b := bytecode.NewStreamBuilder()
		b.Op(op)
		f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
		if !f.Unsupported {
			t.Errorf("%v should flag Unsupported", op)
		}
	}
}

func TestClassifySynchronizedMethodSkipsWalk(t *testing.T) {
	// The entry method has a backward jump, but a synchronized helper
	// disqualifies the class before the walk starts.
	b := bytecode.NewStreamBuilder()
	loop := b.NewLabel()
	b.Mark(loop)
	b.Jump(bytecode.OpGoto, loop)

	class := &bytecode.Class{
		Name: "Eval",
		Methods: []*bytecode.Method{
			b.Method(bytecode.EvalMethodName, 0),
			{Name: "helper", Flags: bytecode.AccSynchronized},
		},
	}
	f := Classify(class, bytecode.EvalMethodName)
	if !f.Unsupported {
		t.Error("synchronized method should flag Unsupported")
	}
	if f.BackwardJump {
		t.Error("instruction walk should be skipped for synchronized classes")
	}
}

func TestClassifyBothCategories(t *testing.T) {
	b := bytecode.NewStreamBuilder()
	loop := b.NewLabel()
	b.Mark(loop)
	b.Jump(bytecode.OpGoto, loop)
	b.Op(bytecode.OpMonitorEnter)

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if !f.BackwardJump || !f.Unsupported {
		t.Errorf("both categories should be flagged, got %+v", f)
	}
}

func TestClassifyEmptyMethod(t *testing.T) {
	f := Classify(evalClass(&bytecode.Method{Name: bytecode.EvalMethodName}), bytecode.EvalMethodName)
	if f != (Features{}) {
		t.Errorf("empty method should yield zero Features, got %+v", f)
	}
}

func TestClassifyNilClass(t *testing.T) {
	if f := Classify(nil, bytecode.EvalMethodName); f != (Features{}) {
		t.Errorf("nil class should yield zero Features, got %+v", f)
	}
}

func TestClassifyMissingMethod(t *testing.T) {
	class := &bytecode.Class{Name: "Eval", Methods: []*bytecode.Method{{Name: "<init>"}}}
	if f := Classify(class, bytecode.EvalMethodName); f != (Features{}) {
		t.Errorf("missing entry method should yield zero Features, got %+v", f)
	}
}

func TestClassifySameLabelTwoJumps(t *testing.T) {
	// A forward jump and a backward jump to the same label: the backward
	// one still counts.
	b := bytecode.NewStreamBuilder()
	l := b.NewLabel()
	b.Jump(bytecode.OpIfEq, l) // forward, not yet visited
	b.Mark(l)
	b.Jump(bytecode.OpGoto, l) // backward

	f := Classify(evalClass(b.Method(bytecode.EvalMethodName, 0)), bytecode.EvalMethodName)
	if !f.BackwardJump {
		t.Error("backward jump after a forward jump to the same label should flag")
	}
}

func TestRequiresLoading(t *testing.T) {
	cases := []struct {
		f    Features
		want bool
	}{
		{Features{}, false},
		{Features{BackwardJump: true}, true},
		{Features{Unsupported: true}, true},
		{Features{Auxiliary: true}, true},
	}
	for _, c := range cases {
		if got := c.f.RequiresLoading(); got != c.want {
			t.Errorf("%+v: got %v, want %v", c.f, got, c.want)
		}
	}
}
