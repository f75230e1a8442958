package usvg

// groupNeed decides whether an element's own styling requires it to be
// wrapped in (or converted into) a Group node rather than folded directly
// into its parent.9: opacity other than 1, a clip/mask/
// filter, a non-identity transform, a non-normal blend mode, isolation, an
// id worth preserving on its own node, or an explicit force (nested <svg>,
// <switch> survivor, `use` expansion root) all require a Group.
type groupNeed struct {
	opacity   float64
	hasClip   bool
	hasMask   bool
	hasFilter bool
	transform bool
	blend     BlendMode
	isolate   bool
	keepID    bool
	forced    bool
}

func (g groupNeed) required() bool {
	return g.opacity != 1 || g.hasClip || g.hasMask || g.hasFilter ||
		g.transform || g.blend != BlendNormal || g.isolate || g.keepID || g.forced
}
