package selfloop

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgraph/pkg/lgraph"
)

// Observer receives the trace of an evaluation.
type Observer interface {
	// Setup is called once with the labels and their candidates.
	Setup(rep *NodeRep, labels []*Label)
	// PassStarted is called before every pass with the penalty so far.
	PassStarted(pass int, penalty float64)
	// CandidateEvaluated reports the global penalty with l at pos.
	CandidateEvaluated(l *Label, pos *LabelPosition, penalty float64, labelLabel, labelEdge int)
	// CandidateChosen reports a strict improvement.
	CandidateChosen(l *Label, pos *LabelPosition, penalty float64)
	// PassFinished is called after every pass.
	PassFinished(pass int, penalty float64)
	// Finished is called with the final assignment.
	Finished(labels []*Label, penalty float64)
}

// NopObserver discards the trace.
type NopObserver struct{}

func (NopObserver) Setup(*NodeRep, []*Label)                                   {}
func (NopObserver) PassStarted(int, float64)                                   {}
func (NopObserver) CandidateEvaluated(*Label, *LabelPosition, float64, int, int) {}
func (NopObserver) CandidateChosen(*Label, *LabelPosition, float64)            {}
func (NopObserver) PassFinished(int, float64)                                  {}
func (NopObserver) Finished([]*Label, float64)                                 {}

// LogObserver writes the trace to a logger at debug level.
type LogObserver struct {
	Logger *log.Logger
}

func (o LogObserver) Setup(rep *NodeRep, labels []*Label) {
	o.Logger.Debug("self-loop labels", "node", rep.Node, "width", rep.Size.X, "height", rep.Size.Y, "labels", len(labels))
	for _, l := range labels {
		for _, pos := range l.Candidates {
			o.Logger.Debug("candidate", "label", l.Text(), "side", pos.Side, "x", pos.Original.X, "y", pos.Original.Y, "penalty", pos.BasePenalty, "alignment", pos.Alignment)
		}
	}
}

func (o LogObserver) PassStarted(pass int, penalty float64) {
	o.Logger.Debug("pass", "run", pass, "penalty", penalty)
}

func (o LogObserver) CandidateEvaluated(l *Label, pos *LabelPosition, penalty float64, labelLabel, labelEdge int) {
	o.Logger.Debug("evaluated", "label", l.Text(), "x", pos.Position.X, "y", pos.Position.Y,
		"penalty", penalty, "label_label", labelLabel, "label_edge", labelEdge)
}

func (o LogObserver) CandidateChosen(l *Label, pos *LabelPosition, penalty float64) {
	o.Logger.Debug("chosen", "label", l.Text(), "x", pos.Position.X, "y", pos.Position.Y, "penalty", penalty)
}

func (o LogObserver) PassFinished(pass int, penalty float64) {
	o.Logger.Debug("pass done", "run", pass, "penalty", penalty)
}

func (o LogObserver) Finished(labels []*Label, penalty float64) {
	for _, l := range labels {
		o.Logger.Debug("result", "label", l.Text(), "side", l.Position.Side, "x", l.Position.Position.X, "y", l.Position.Position.Y)
	}
	o.Logger.Debug("self-loop labels placed", "penalty", penalty)
}

// Result summarizes an evaluation.
type Result struct {
	// Initial is the penalty with every label at its first candidate.
	Initial float64
	// Passes holds the penalty after every pass. It never increases.
	Passes []float64
	// Penalty is the final penalty.
	Penalty     float64
	Evaluations int
}

// evaluator runs the local search for one node.
type evaluator struct {
	rep       *NodeRep
	labels    []*Label
	penalties Penalties
	obs       Observer
	count     int

	// Totals of the last evaluation.
	labelLabel, labelEdge int
}

// Evaluate chooses one candidate per label of rep by coordinate descent.
// Every label starts at its first candidate. Each pass tries all
// candidates of each label in turn, keeping one only when it strictly
// lowers the global penalty; passes repeat until one brings no
// improvement. The result is a local optimum.
func Evaluate(rep *NodeRep, penalties Penalties, obs Observer) Result {
	if obs == nil {
		obs = NopObserver{}
	}
	ev := &evaluator{rep: rep, penalties: penalties, obs: obs}
	for _, c := range rep.Components {
		if c.Label != nil && len(c.Label.Candidates) > 0 {
			ev.labels = append(ev.labels, c.Label)
		}
	}
	if len(ev.labels) == 0 {
		return Result{}
	}

	obs.Setup(rep, ev.labels)
	for _, l := range ev.labels {
		l.Position = l.Candidates[0]
	}

	minimum := ev.penalty()
	res := Result{Initial: minimum}
	previous := math.MaxFloat64
	for pass := 1; minimum < previous; pass++ {
		obs.PassStarted(pass, minimum)
		previous = minimum
		for _, l := range ev.labels {
			best := l.Position
			for _, pos := range l.Candidates {
				l.Position = pos
				p := ev.penalty()
				obs.CandidateEvaluated(l, pos, p, ev.labelLabel, ev.labelEdge)
				if p < minimum {
					minimum = p
					best = pos
					obs.CandidateChosen(l, pos, p)
				}
			}
			l.Position = best
		}
		obs.PassFinished(pass, minimum)
		res.Passes = append(res.Passes, minimum)
	}

	// Leave offsets and counters matching the chosen assignment.
	ev.penalty()
	res.Penalty = minimum
	res.Evaluations = ev.count
	obs.Finished(ev.labels, minimum)
	return res
}

// penalty resets all current positions, recomputes the offsets and
// returns the weighted crossings plus the base penalties.
func (ev *evaluator) penalty() float64 {
	ev.count++
	base := 0.0
	for _, l := range ev.labels {
		l.Position.Reset()
		base += l.Position.BasePenalty
	}

	computePortOffsets(ev.rep, ev.labels)
	computeSegmentOffsets(ev.rep, ev.labels)

	ev.labelLabel = labelLabelCrossings(ev.labels)
	ev.labelEdge = labelEdgeCrossings(ev.rep, ev.labels)
	return ev.penalties.LabelEdgeCrossing*float64(ev.labelEdge) +
		ev.penalties.LabelLabelCrossing*float64(ev.labelLabel) +
		base
}

// labelLabelCrossings counts overlapping pairs of labels.
func labelLabelCrossings(labels []*Label) int {
	n := 0
	for i, a := range labels {
		for _, b := range labels[i+1:] {
			if labelsCross(a, b) {
				a.Position.LabelLabelCrossings++
				b.Position.LabelLabelCrossings++
				n++
			}
		}
	}
	return n
}

// labelsCross tests the current boxes of a and b for overlap on both axes
// with half-open intervals.
func labelsCross(a, b *Label) bool {
	pa, pb := a.Position.Position, b.Position.Position
	overlapX := (pa.X <= pb.X && pb.X < pa.X+a.Size.X) || (pb.X <= pa.X && pa.X < pb.X+b.Size.X)
	overlapY := (pa.Y <= pb.Y && pb.Y < pa.Y+a.Size.Y) || (pb.Y <= pa.Y && pa.Y < pb.Y+b.Size.Y)
	return overlapX && overlapY
}

// labelEdgeCrossings counts, for every label, the ports on its side whose
// loop it crosses.
func labelEdgeCrossings(rep *NodeRep, labels []*Label) int {
	n := 0
	for _, l := range labels {
		for _, p := range rep.Side(l.Position.Side).Ports {
			if crossesLoop(rep, l, p) {
				l.Position.LabelEdgeCrossings++
				n++
			}
		}
	}
	return n
}

// crossesLoop tests l against the loop leaving p, whose bend sits at the
// port's level plus its offset. On north and south the label crosses when
// it spans the port horizontally and reaches below the bend; on east and
// west when it spans the port vertically and ends short of the bend, or
// the port has no offset.
func crossesLoop(rep *NodeRep, l *Label, p *Port) bool {
	pos := l.Position.Position
	port := p.Port.Position
	dir := p.Side().Vector()
	bend := p.Anchor().Plus(dir.Times(float64(p.MaxLevel)*rep.EdgeEdgeSpacing + p.OtherEdgeOffset))

	switch l.Position.Side {
	case lgraph.North, lgraph.South:
		return pos.X <= port.X && port.X <= pos.X+l.Size.X && pos.Y+l.Size.Y > bend.Y
	default:
		return pos.Y <= port.Y && port.Y <= pos.Y+l.Size.Y &&
			(pos.X+l.Size.X < bend.X || p.OtherEdgeOffset == 0)
	}
}
