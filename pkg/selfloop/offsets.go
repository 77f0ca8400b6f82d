package selfloop

// labelDepth is how far the label reaches away from a segment on side.
func labelDepth(l *Label, pos *LabelPosition) float64 {
	if pos.Side.IsVertical() {
		return l.Size.Y
	}
	return l.Size.X
}

// covers reports whether the label's extent along its side contains the
// anchor of p.
func covers(l *Label, pos *LabelPosition, p *Port) bool {
	a := p.Anchor()
	if pos.Side.IsVertical() {
		return pos.Position.X <= a.X && a.X <= pos.Position.X+l.Size.X
	}
	return pos.Position.Y <= a.Y && a.Y <= pos.Position.Y+l.Size.Y
}

// computePortOffsets pushes the loops of every port outward past the labels
// lying beneath them: a label on a lower level than the port's outermost
// loop that covers the port moves the port's loops out by the label's
// depth plus the edge-label spacing.
func computePortOffsets(rep *NodeRep, labels []*Label) {
	for _, p := range rep.ports {
		p.OtherEdgeOffset = 0
	}
	for _, l := range labels {
		pos := l.Position
		for _, p := range rep.Side(pos.Side).Ports {
			if p.Component == nil || p.MaxLevel <= pos.level || !covers(l, pos, p) {
				continue
			}
			p.OtherEdgeOffset = max(p.OtherEdgeOffset, labelDepth(l, pos)+rep.EdgeLabelSpacing)
		}
	}
}

// computeSegmentOffsets does the same for segments. Labels placed on a
// segment then move outward with it.
func computeSegmentOffsets(rep *NodeRep, labels []*Label) {
	for _, side := range rep.sides {
		for _, seg := range side.Segments {
			seg.LabelOffset = 0
			for _, l := range labels {
				pos := l.Position
				if pos.Side != side.Side || pos.segment == seg || pos.level >= seg.Level {
					continue
				}
				seg.LabelOffset = max(seg.LabelOffset, labelDepth(l, pos)+rep.EdgeLabelSpacing)
			}
		}
	}
	for _, l := range labels {
		pos := l.Position
		if seg := pos.segment; seg != nil && seg.LabelOffset > 0 {
			pos.Position.Add(seg.Side.Vector().Times(seg.LabelOffset))
		}
	}
}
