package usvg

import "github.com/pgavlin/svgrender/svgtree"

var filterPrimitiveNames = map[svgtree.EId]string{
	svgtree.EFeBlend: "feBlend", svgtree.EFeColorMatrix: "feColorMatrix",
	svgtree.EFeComponentTransfer: "feComponentTransfer", svgtree.EFeComposite: "feComposite",
	svgtree.EFeConvolveMatrix: "feConvolveMatrix", svgtree.EFeDiffuseLighting: "feDiffuseLighting",
	svgtree.EFeDisplacementMap: "feDisplacementMap", svgtree.EFeDropShadow: "feDropShadow",
	svgtree.EFeFlood: "feFlood", svgtree.EFeFuncR: "feFuncR", svgtree.EFeFuncG: "feFuncG",
	svgtree.EFeFuncB: "feFuncB", svgtree.EFeFuncA: "feFuncA",
	svgtree.EFeGaussianBlur: "feGaussianBlur", svgtree.EFeImage: "feImage",
	svgtree.EFeMerge: "feMerge", svgtree.EFeMergeNode: "feMergeNode",
	svgtree.EFeMorphology: "feMorphology", svgtree.EFeOffset: "feOffset",
	svgtree.EFeSpecularLighting: "feSpecularLighting", svgtree.EFeTile: "feTile",
	svgtree.EFeTurbulence: "feTurbulence",
}

func filterPrimitiveName(eid svgtree.EId) string {
	if s, ok := filterPrimitiveNames[eid]; ok {
		return s
	}
	return "unknown"
}

var filterParamNames = map[svgtree.AId]string{
	svgtree.AStdDeviation: "stdDeviation", svgtree.AValues: "values",
	svgtree.AOperator: "operator", svgtree.AScale: "scale", svgtree.ARadius: "radius",
	svgtree.AK1: "k1", svgtree.AK2: "k2", svgtree.AK3: "k3", svgtree.AK4: "k4",
	svgtree.ATableValues: "tableValues", svgtree.ASlope: "slope",
	svgtree.AIntercept: "intercept", svgtree.AAmplitude: "amplitude",
	svgtree.AExponent: "exponent", svgtree.AOffset: "offset",
	svgtree.AXChannelSelector: "xChannelSelector", svgtree.AYChannelSelector: "yChannelSelector",
	svgtree.ANumOctaves: "numOctaves", svgtree.ABaseFrequency: "baseFrequency",
	svgtree.ASeed: "seed", svgtree.AStitchTiles: "stitchTiles",
	svgtree.AKernelMatrix: "kernelMatrix", svgtree.ADivisor: "divisor",
	svgtree.ABias: "bias", svgtree.ATargetX: "targetX", svgtree.ATargetY: "targetY",
	svgtree.AEdgeMode: "edgeMode", svgtree.APreserveAlpha: "preserveAlpha",
	svgtree.ASurfaceScale: "surfaceScale", svgtree.ADiffuseConstant: "diffuseConstant",
	svgtree.ASpecularConstant: "specularConstant", svgtree.ASpecularExponent: "specularExponent",
	svgtree.AElevation: "elevation", svgtree.AAzimuth: "azimuth",
	svgtree.APointsAtX: "pointsAtX", svgtree.APointsAtY: "pointsAtY", svgtree.APointsAtZ: "pointsAtZ",
	svgtree.AType: "type", svgtree.AMode: "mode", svgtree.AX: "x", svgtree.AY: "y",
	svgtree.AWidth: "width", svgtree.AHeight: "height", svgtree.ADx: "dx", svgtree.ADy: "dy",
	svgtree.AFloodColor: "flood-color", svgtree.AFloodOpacity: "flood-opacity",
	svgtree.ALightingColor: "lighting-color", svgtree.AHref: "href",
	svgtree.AColorInterpolationFilters: "color-interpolation-filters",
}

func filterParamName(aid svgtree.AId) string {
	if s, ok := filterParamNames[aid]; ok {
		return s
	}
	return "unknown"
}
