package searcher

// Search runs alpha-beta from root with the maximizing side to move. alpha and
// beta seed the bounds and are normally unit-less sentinels standing in for
// -inf and +inf.
//
// The returned node is a child of root whenever root has children: the child
// that held alpha when the search finished, or the child that caused a cutoff.
// If root is terminal or has no children, the returned node is root itself or
// the alpha seed, and the caller must detect that case.
func (a *AlphaBeta[N]) Search(root, alpha, beta N) (N, SearchMetric) {
	var collector Collector = dummyCollector{}
	if a.metrics {
		collector = NewCollector()
	}
	collector.Start(a.plyLimit)

	r := &run[N]{plyLimit: a.plyLimit, tracer: a.tracer, metrics: collector}
	best := r.alphaBeta(root, 0, true, alpha, beta)
	return best, collector.Complete()
}

type run[N Node[N]] struct {
	plyLimit int
	tracer   Tracer
	metrics  Collector
}

func (r *run[N]) alphaBeta(node N, ply int, isMax bool, alpha, beta N) N {
	if ply == r.plyLimit || node.IsTerminal() {
		r.metrics.AddLeaf()
		return node
	}

	children := order(node.Children(isMax))
	r.metrics.AddExpansion(len(children))
	r.tracer.Expand(ply, node, isMax, alpha.Eval(), beta.Eval(), len(children))

	for _, c := range children {
		v := r.alphaBeta(c, ply+1, !isMax, alpha, beta).Eval()
		if isMax && v > alpha.Eval() {
			r.tracer.Improve(ply, c, true, alpha.Eval(), c.Eval())
			alpha = c
		} else if !isMax && v < beta.Eval() {
			r.tracer.Improve(ply, c, false, beta.Eval(), c.Eval())
			beta = c
		}
		if alpha.Eval() >= beta.Eval() {
			r.metrics.AddCutoff()
			r.tracer.Cutoff(ply, c, alpha.Eval(), beta.Eval())
			return c
		}
	}

	if isMax {
		r.tracer.Exhaust(ply, alpha, true)
		return alpha
	}
	r.tracer.Exhaust(ply, beta, false)
	return beta
}

// order sorts children best-first by Eval using stable insertion: a child is
// placed before the first child with a strictly lower value, so ties keep
// generation order.
func order[N Node[N]](generated []N) []N {
	ordered := make([]N, 0, len(generated))
	for _, child := range generated {
		v := child.Eval()
		i := len(ordered)
		for j, other := range ordered {
			if v > other.Eval() {
				i = j
				break
			}
		}
		ordered = append(ordered, child)
		copy(ordered[i+1:], ordered[i:len(ordered)-1])
		ordered[i] = child
	}
	return ordered
}
