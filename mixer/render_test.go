// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"testing"
)

const tolerance = 1e-12

// settle renders enough samples to complete any pending ramp.
func settle(m *Mixer) {
	n := m.RampSamples() + 1
	ins := newBuffers(m.Inputs()*m.Buses(), n, nil)
	outs := newBuffers(m.Buses(), n, nil)
	m.RenderBlock(ins, outs, n)
}

func TestRenderBlock_RampLinearity(t *testing.T) {
	t.Parallel()

	// 100 samples per ramp
	m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 100})
	ins := newBuffers(2, 300, func(ch, s int) float64 {
		if ch == 0 {
			return 1
		}
		return 0.25
	})

	if err := m.SetLevels(1, []float64{0.2, 0}); err != nil {
		t.Fatal(err)
	}
	settle(m)

	if err := m.SetLevels(1, []float64{0.8, 0}); err != nil {
		t.Fatal(err)
	}
	got := render(m, ins, 100, 7, 33, 1)

	const d = 100
	for k := range d {
		want := 0.2 + float64(k)*(0.8-0.2)/d
		if math.Abs(got[k]-want) > tolerance {
			t.Errorf("sample %d = %v, want %v", k, got[k], want)
		}
	}
}

func TestRenderBlock_SettlesExactly(t *testing.T) {
	t.Parallel()

	var done int
	m := mustNew(t, Config{
		Inputs:     3,
		SampleRate: 1000,
		RampMs:     100,
		OnRampDone: func() { done++ },
	})
	ins := newBuffers(3, 120, constant(1))

	if err := m.SetLevels(1.0/3, []float64{0.1, 1.0 / 7, 0.7}); err != nil {
		t.Fatal(err)
	}
	render(m, ins, 120, 40)

	st := m.Snapshot()
	if st.Ramping {
		t.Fatal("still ramping after the ramp length")
	}
	if st.Master != st.MasterTarget {
		t.Errorf("master = %v, want exactly %v", st.Master, st.MasterTarget)
	}
	for i := range st.Current {
		if st.Current[i] != st.Target[i] {
			t.Errorf("gain[%d] = %v, want exactly %v", i, st.Current[i], st.Target[i])
		}
	}
	if done != 1 {
		t.Errorf("OnRampDone called %d times, want 1", done)
	}
}

func TestRenderBlock_MasterRampToSilence(t *testing.T) {
	t.Parallel()

	// 10 samples per ramp
	m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 10})
	ins := newBuffers(2, 15, constant(1))

	if err := m.SetLevels(1, []float64{1, 0}); err != nil {
		t.Fatal(err)
	}
	settle(m)

	if err := m.SetMaster(0); err != nil {
		t.Fatal(err)
	}
	got := render(m, ins, 15, 15)

	for k := range 10 {
		want := 1 - float64(k)/10
		if math.Abs(got[k]-want) > tolerance {
			t.Errorf("sample %d = %v, want %v", k, got[k], want)
		}
	}
	for k := 10; k < 15; k++ {
		if got[k] != 0 {
			t.Errorf("sample %d = %v, want exactly 0", k, got[k])
		}
	}
}

func TestRenderBlock_ZeroLengthRamp(t *testing.T) {
	t.Parallel()

	var done int
	// 0.5 ms at 1 kHz truncates to a zero-sample ramp
	m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 0.5, OnRampDone: func() { done++ }})
	if m.RampSamples() != 0 {
		t.Fatalf("RampSamples() = %d, want 0", m.RampSamples())
	}

	ins := newBuffers(2, 8, func(ch, s int) float64 { return float64(ch + 1) })

	if err := m.SetLevels(1, []float64{1, 0}); err != nil {
		t.Fatal(err)
	}
	for k, v := range render(m, ins, 8, 8) {
		if v != 1 {
			t.Errorf("first command: sample %d = %v, want 1", k, v)
		}
	}

	if err := m.SetLevels(1, []float64{0, 1}); err != nil {
		t.Fatal(err)
	}
	for k, v := range render(m, ins, 8, 8) {
		if v != 2 {
			t.Errorf("second command: sample %d = %v, want 2", k, v)
		}
	}

	if done != 2 {
		t.Errorf("OnRampDone called %d times, want 2", done)
	}
}

func TestRenderBlock_RampEndsMidBlock(t *testing.T) {
	t.Parallel()

	var m *Mixer
	var rampingAtDone bool
	m = mustNew(t, Config{
		Inputs:     2,
		SampleRate: 1000,
		RampMs:     10,
		OnRampDone: func() { rampingAtDone = m.Ramping() },
	})
	ins := newBuffers(2, 16, constant(1))

	if err := m.SetLevels(0.5, []float64{1, 1}); err != nil {
		t.Fatal(err)
	}
	got := render(m, ins, 16, 16)

	if rampingAtDone {
		t.Error("OnRampDone fired while still ramping")
	}
	// master 1 -> 0.5 and both gains 0 -> 1 over 10 samples
	for k := range 10 {
		f := float64(k) / 10
		want := (1 - 0.5*f) * 2 * f
		if math.Abs(got[k]-want) > tolerance {
			t.Errorf("ramp sample %d = %v, want %v", k, got[k], want)
		}
	}
	for k := 10; k < 16; k++ {
		if got[k] != 1 {
			t.Errorf("steady sample %d = %v, want 1", k, got[k])
		}
	}
}

func TestRenderBlock_CommandDuringRampRestarts(t *testing.T) {
	t.Parallel()

	m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 10})
	ins := newBuffers(2, 20, constant(1))

	if err := m.SetLevels(1, []float64{1, 0}); err != nil {
		t.Fatal(err)
	}
	render(m, ins, 4, 4)

	st := m.Snapshot()
	if math.Abs(st.Current[0]-0.4) > tolerance {
		t.Fatalf("gain after 4 samples = %v, want 0.4", st.Current[0])
	}

	if err := m.SetLevels(1, []float64{0, 0}); err != nil {
		t.Fatal(err)
	}
	if st := m.Snapshot(); st.Remaining != 10 {
		t.Fatalf("Remaining = %d after restart, want 10", st.Remaining)
	}

	got := render(m, ins, 12, 12)
	for k := range 10 {
		want := 0.4 - float64(k)*0.04
		if math.Abs(got[k]-want) > tolerance {
			t.Errorf("sample %d = %v, want %v", k, got[k], want)
		}
	}
	if got[10] != 0 || got[11] != 0 {
		t.Errorf("tail = %v, %v, want 0, 0", got[10], got[11])
	}
}

func TestRenderBlock_SilenceShortCircuit(t *testing.T) {
	t.Parallel()

	m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 10})
	if err := m.SetLevels(0, []float64{1, 1}); err != nil {
		t.Fatal(err)
	}
	settle(m)

	ins := newBuffers(2, 32, func(ch, s int) float64 { return math.Sin(float64(s + ch)) })
	outs := newBuffers(1, 32, constant(42))
	m.RenderBlock(ins, outs, 32)

	for s, v := range outs[0] {
		if v != 0 {
			t.Fatalf("outs[0][%d] = %v, want 0", s, v)
		}
	}

	// gain changes still settle while the master is silent
	if err := m.SetLevels(0, []float64{0.5, 0.25}); err != nil {
		t.Fatal(err)
	}
	render(m, ins, 10, 3)

	st := m.Snapshot()
	if st.Ramping {
		t.Fatal("ramp did not complete under a silent master")
	}
	if st.Current[0] != 0.5 || st.Current[1] != 0.25 {
		t.Errorf("gains = %v, want [0.5 0.25]", st.Current)
	}
}

func TestRenderBlock_SteadyStateIsPartitionIndependent(t *testing.T) {
	t.Parallel()

	setup := func() *Mixer {
		m := mustNew(t, Config{Inputs: 2, SampleRate: 1000, RampMs: 5})
		if err := m.SetLevels(0.9, []float64{0.3, 0.7}); err != nil {
			t.Fatal(err)
		}
		if err := m.SetAdjustOne(Decibel, 1, -6); err != nil {
			t.Fatal(err)
		}
		settle(m)
		return m
	}

	ins := newBuffers(2, 100, func(ch, s int) float64 {
		return math.Sin(0.1*float64(s) + float64(ch))
	})

	whole := render(setup(), ins, 100, 100)
	split := render(setup(), ins, 100, 40, 60)

	eff0 := 0.9 * 1 * 0.3
	eff1 := 0.9 * DbToLinear(-6) * 0.7
	for s := range whole {
		if whole[s] != split[s] {
			t.Errorf("sample %d: one block = %v, 40+60 = %v", s, whole[s], split[s])
		}
		want := eff0*ins[0][s] + eff1*ins[1][s]
		if math.Abs(whole[s]-want) > tolerance {
			t.Errorf("sample %d = %v, want %v", s, whole[s], want)
		}
	}
}

func TestRenderBlock_TwoBuses(t *testing.T) {
	t.Parallel()

	m := mustNew(t, Config{Inputs: 2, Buses: 2, SampleRate: 1000, RampMs: 0.1})
	if err := m.SetLevels(1, []float64{1, 0.5}); err != nil {
		t.Fatal(err)
	}

	// stacked layout: ch0 L, ch1 L, ch0 R, ch1 R
	ins := newBuffers(4, 16, func(ch, s int) float64 { return float64(ch+1) * 0.1 })
	outs := newBuffers(2, 16, nil)
	m.RenderBlock(ins, outs, 16)

	wantL := 0.1 + 0.5*0.2
	wantR := 0.3 + 0.5*0.4
	for s := range 16 {
		if math.Abs(outs[0][s]-wantL) > tolerance {
			t.Errorf("left[%d] = %v, want %v", s, outs[0][s], wantL)
		}
		if math.Abs(outs[1][s]-wantR) > tolerance {
			t.Errorf("right[%d] = %v, want %v", s, outs[1][s], wantR)
		}
	}
}

func TestRenderBlock_TwoBusesRamp(t *testing.T) {
	t.Parallel()

	m := mustNew(t, Config{Inputs: 2, Buses: 2, SampleRate: 1000, RampMs: 8})
	if err := m.SetLevels(1, []float64{0, 1}); err != nil {
		t.Fatal(err)
	}

	ins := newBuffers(4, 8, func(ch, s int) float64 {
		switch ch {
		case 1:
			return 1
		case 3:
			return -1
		}
		return 0
	})
	outs := newBuffers(2, 8, nil)
	m.RenderBlock(ins, outs, 8)

	for s := range 8 {
		want := float64(s) / 8
		if math.Abs(outs[0][s]-want) > tolerance {
			t.Errorf("left[%d] = %v, want %v", s, outs[0][s], want)
		}
		if math.Abs(outs[1][s]+want) > tolerance {
			t.Errorf("right[%d] = %v, want %v", s, outs[1][s], -want)
		}
	}
}

func TestRenderBlock_ZeroAllocs(t *testing.T) {
	m := mustNew(t, Config{Inputs: 8, Buses: 2, SampleRate: 48000, RampMs: 5})
	ins := newBuffers(16, 256, constant(0.5))
	outs := newBuffers(2, 256, nil)

	allocs := testing.AllocsPerRun(100, func() {
		_ = m.Pan(1, 3.5)
		m.RenderBlock(ins, outs, 256)
	})

	if allocs > 0 {
		t.Errorf("Pan()+RenderBlock() allocated %v times, want 0", allocs)
	}
}

func BenchmarkRenderBlock_Steady(b *testing.B) {
	m := mustNew(b, Config{Inputs: 16, Buses: 2})
	if err := m.SetLevels(1, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}); err != nil {
		b.Fatal(err)
	}
	settle(m)
	ins := newBuffers(32, 512, constant(0.1))
	outs := newBuffers(2, 512, nil)

	b.ReportAllocs()
	for b.Loop() {
		m.RenderBlock(ins, outs, 512)
	}
}

func BenchmarkRenderBlock_Ramping(b *testing.B) {
	m := mustNew(b, Config{Inputs: 16, Buses: 2})
	ins := newBuffers(32, 512, constant(0.1))
	outs := newBuffers(2, 512, nil)

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		if i%4 == 0 {
			_ = m.Pan(1, float64(i%15))
		}
		m.RenderBlock(ins, outs, 512)
	}
}
