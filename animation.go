package dropbubble

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Task is a cancellable animation step: up to two tweened values written
// through apply each frame, or a plain delay when it has no tweens. Call
// Update(dt) each frame, or let an Animator do it.
//
// The completion callback runs at most once: when the tweens finish, or
// synchronously from End. Cancel stops the task without running it.
type Task struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(v [2]float64)
	length float32
	delay  float32
	onDone func()
	Done   bool
}

// NewTween creates a task animating one or two values from from[i] to to[i]
// over d with the easing function. n selects how many of the pair are used.
func NewTween(n int, from, to [2]float64, d time.Duration, fn ease.TweenFunc, apply func(v [2]float64)) *Task {
	if n < 1 {
		n = 1
	}
	if n > 2 {
		n = 2
	}
	t := &Task{count: n, apply: apply, length: seconds(d)}
	for i := 0; i < n; i++ {
		t.tweens[i] = gween.New(float32(from[i]), float32(to[i]), t.length, fn)
	}
	return t
}

// NewDelay creates a task that completes after d has elapsed.
func NewDelay(d time.Duration, fn func()) *Task {
	return &Task{delay: seconds(d), onDone: fn}
}

// OnDone sets the completion callback and returns t for chaining.
func (t *Task) OnDone(fn func()) *Task {
	t.onDone = fn
	return t
}

// Update advances the task by dt seconds. Writes the tweened values, then
// completes the task if every tween has finished.
func (t *Task) Update(dt float32) {
	if t.Done {
		return
	}
	if t.count == 0 {
		t.delay -= dt
		if t.delay <= 0 {
			t.finish()
		}
		return
	}

	var vals [2]float64
	allDone := true
	for i := 0; i < t.count; i++ {
		v, finished := t.tweens[i].Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	if t.apply != nil {
		t.apply(vals)
	}
	if allDone {
		t.finish()
	}
}

// End jumps to the final values and runs the completion callback before
// returning. No-op on a finished or cancelled task.
func (t *Task) End() {
	if t.Done {
		return
	}
	if t.count > 0 {
		var vals [2]float64
		for i := 0; i < t.count; i++ {
			v, _ := t.tweens[i].Set(t.length)
			vals[i] = float64(v)
		}
		if t.apply != nil {
			t.apply(vals)
		}
	}
	t.finish()
}

// Cancel stops the task where it is. The completion callback never runs.
func (t *Task) Cancel() {
	t.Done = true
}

func (t *Task) finish() {
	t.Done = true
	if fn := t.onDone; fn != nil {
		t.onDone = nil
		fn()
	}
}

// Animator owns the running tasks of one engine. There is no global animation
// manager; the owner calls Update once per frame.
type Animator struct {
	tasks []*Task
}

// Start adds a task and returns it.
func (a *Animator) Start(t *Task) *Task {
	a.tasks = append(a.tasks, t)
	return t
}

// Update advances every running task by dt seconds and drops finished ones.
// Tasks started from a completion callback begin ticking on the next frame.
func (a *Animator) Update(dt float32) {
	n := len(a.tasks)
	for i := 0; i < n; i++ {
		a.tasks[i].Update(dt)
	}
	live := a.tasks[:0]
	for _, t := range a.tasks {
		if !t.Done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(a.tasks); i++ {
		a.tasks[i] = nil
	}
	a.tasks = live
}

// Len returns the number of running tasks.
func (a *Animator) Len() int {
	n := 0
	for _, t := range a.tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// Overshoot returns an easing function that passes the target and settles
// back onto it. tension controls how far it overshoots; 0 is a plain
// ease-out cubic, larger values overshoot more.
func Overshoot(tension float32) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((tension+1)*t+tension)+1) + b
	}
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
