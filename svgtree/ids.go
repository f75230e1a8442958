package svgtree

// EId is a closed enumeration of the SVG elements this pipeline recognizes.
// Anything else is dropped while building the intermediate tree.
type EId int

const (
	EUnknown EId = iota
	ESvg
	EG
	EDefs
	ESymbol
	EUse
	ESwitch
	EMarker
	ELinearGradient
	ERadialGradient
	EPattern
	EStop
	EClipPath
	EMask
	EFilter
	EFeBlend
	EFeColorMatrix
	EFeComponentTransfer
	EFeComposite
	EFeConvolveMatrix
	EFeDiffuseLighting
	EFeDisplacementMap
	EFeDropShadow
	EFeFlood
	EFeFuncR
	EFeFuncG
	EFeFuncB
	EFeFuncA
	EFeGaussianBlur
	EFeImage
	EFeMerge
	EFeMergeNode
	EFeMorphology
	EFeOffset
	EFeSpecularLighting
	EFeTile
	EFeTurbulence
	EPath
	ERect
	ECircle
	EEllipse
	ELine
	EPolyline
	EPolygon
	EText
	ETSpan
	ETextPath
	EImage
	EForeignObject
	EStyle
	EA
)

var elementNames = map[string]EId{
	"svg": ESvg, "g": EG, "defs": EDefs, "symbol": ESymbol, "use": EUse,
	"switch": ESwitch, "marker": EMarker,
	"linearGradient": ELinearGradient, "radialGradient": ERadialGradient,
	"pattern": EPattern, "stop": EStop,
	"clipPath": EClipPath, "mask": EMask, "filter": EFilter,
	"feBlend": EFeBlend, "feColorMatrix": EFeColorMatrix,
	"feComponentTransfer": EFeComponentTransfer, "feComposite": EFeComposite,
	"feConvolveMatrix": EFeConvolveMatrix, "feDiffuseLighting": EFeDiffuseLighting,
	"feDisplacementMap": EFeDisplacementMap, "feDropShadow": EFeDropShadow,
	"feFlood": EFeFlood, "feFuncR": EFeFuncR, "feFuncG": EFeFuncG,
	"feFuncB": EFeFuncB, "feFuncA": EFeFuncA, "feGaussianBlur": EFeGaussianBlur,
	"feImage": EFeImage, "feMerge": EFeMerge, "feMergeNode": EFeMergeNode,
	"feMorphology": EFeMorphology, "feOffset": EFeOffset,
	"feSpecularLighting": EFeSpecularLighting, "feTile": EFeTile,
	"feTurbulence": EFeTurbulence,
	"path":         EPath, "rect": ERect, "circle": ECircle, "ellipse": EEllipse,
	"line": ELine, "polyline": EPolyline, "polygon": EPolygon,
	"text": EText, "tspan": ETSpan, "textPath": ETextPath,
	"image": EImage, "foreignObject": EForeignObject,
	"style": EStyle, "a": EA,
}

// ParseEId maps an element's local name to its EId, or (0, false) if it is
// not a recognized element.
func ParseEId(local string) (EId, bool) {
	id, ok := elementNames[local]
	return id, ok
}

// shapeElements is the set of EIds that become a geometric Path.
var shapeElements = map[EId]bool{
	EPath: true, ERect: true, ECircle: true, EEllipse: true,
	ELine: true, EPolyline: true, EPolygon: true,
}

func IsShapeElement(id EId) bool { return shapeElements[id] }

// containerElements is the set of EIds that nest children the generic walker
// recurses into.
var containerElements = map[EId]bool{
	ESvg: true, EG: true, EDefs: true, ESymbol: true, ESwitch: true,
	EMarker: true, EPattern: true, EClipPath: true, EMask: true,
	ELinearGradient: true, ERadialGradient: true, EFilter: true,
	EText: true, ETSpan: true, ETextPath: true, EA: true,
}

func IsContainer(id EId) bool { return containerElements[id] }

// AId is a closed enumeration of the presentation/geometry attributes this
// pipeline resolves. Attribute names outside this set (and outside the
// SVG/XLink/XML namespaces) are dropped.
type AId int

const (
	AUnknown AId = iota
	AId_
	AClass
	AStyle
	ATransform
	AX
	AY
	AX1
	AY1
	AX2
	AY2
	ACx
	ACy
	AR
	ARx
	ARy
	AWidth
	AHeight
	APoints
	AD
	AHref
	AViewBox
	APreserveAspectRatio
	ARefX
	ARefY
	AMarkerWidth
	AMarkerHeight
	AMarkerUnits
	AOrient
	AGradientUnits
	AGradientTransform
	ASpreadMethod
	AOffset
	AStopColor
	AStopOpacity
	APatternUnits
	APatternContentUnits
	APatternTransform
	AFx
	AFy
	AFr
	AFill
	AFillOpacity
	AFillRule
	AStroke
	AStrokeOpacity
	AStrokeWidth
	AStrokeLinecap
	AStrokeLinejoin
	AStrokeMiterlimit
	AStrokeDasharray
	AStrokeDashoffset
	AOpacity
	AColor
	AClipPath
	AClipRule
	AMask
	AMaskUnits
	AMaskContentUnits
	AFilter
	AFilterUnits
	APrimitiveUnits
	ADisplay
	AVisibility
	AMarkerStart
	AMarkerMid
	AMarkerEnd
	APaintOrder
	AFontFamily
	AFontSize
	AFontStyle
	AFontWeight
	AFontStretch
	AFontVariant
	ALetterSpacing
	AWordSpacing
	ATextAnchor
	ATextDecoration
	AWritingMode
	ADominantBaseline
	AAlignmentBaseline
	ABaselineShift
	AStartOffset
	ARotate
	ADx
	ADy
	ABlendMode
	AIsolation
	AShapeRendering
	ATextRendering
	AImageRendering
	AColorInterpolationFilters
	AFloodColor
	AFloodOpacity
	ALightingColor
	AIn
	AIn2
	AResult
	AType
	AMode
	AMedia
	ASystemLanguage
	ARequiredFeatures
	ARequiredExtensions
	APathLength

	// Filter-primitive-specific attributes.
	AStdDeviation
	AValues
	AOperator
	AScale
	ARadius
	AK1
	AK2
	AK3
	AK4
	ATableValues
	ASlope
	AIntercept
	AAmplitude
	AExponent
	AXChannelSelector
	AYChannelSelector
	ANumOctaves
	ABaseFrequency
	ASeed
	AStitchTiles
	AKernelMatrix
	ADivisor
	ABias
	ATargetX
	ATargetY
	AEdgeMode
	APreserveAlpha
	ASurfaceScale
	ADiffuseConstant
	ASpecularConstant
	ASpecularExponent
	AElevation
	AAzimuth
	APointsAtX
	APointsAtY
	APointsAtZ
)

var attrNames = map[string]AId{
	"id": AId_, "class": AClass, "style": AStyle, "transform": ATransform,
	"x": AX, "y": AY, "x1": AX1, "y1": AY1, "x2": AX2, "y2": AY2,
	"cx": ACx, "cy": ACy, "r": AR, "rx": ARx, "ry": ARy,
	"width": AWidth, "height": AHeight, "points": APoints, "d": AD,
	"href": AHref, "xlink:href": AHref,
	"viewBox": AViewBox, "preserveAspectRatio": APreserveAspectRatio,
	"refX": ARefX, "refY": ARefY,
	"markerWidth": AMarkerWidth, "markerHeight": AMarkerHeight,
	"markerUnits": AMarkerUnits, "orient": AOrient,
	"gradientUnits": AGradientUnits, "gradientTransform": AGradientTransform,
	"spreadMethod": ASpreadMethod, "offset": AOffset,
	"stop-color": AStopColor, "stop-opacity": AStopOpacity,
	"patternUnits": APatternUnits, "patternContentUnits": APatternContentUnits,
	"patternTransform": APatternTransform,
	"fx": AFx, "fy": AFy, "fr": AFr,
	"fill": AFill, "fill-opacity": AFillOpacity, "fill-rule": AFillRule,
	"stroke": AStroke, "stroke-opacity": AStrokeOpacity, "stroke-width": AStrokeWidth,
	"stroke-linecap": AStrokeLinecap, "stroke-linejoin": AStrokeLinejoin,
	"stroke-miterlimit": AStrokeMiterlimit, "stroke-dasharray": AStrokeDasharray,
	"stroke-dashoffset": AStrokeDashoffset,
	"opacity":  AOpacity, "color": AColor,
	"clip-path": AClipPath, "clip-rule": AClipRule,
	"mask": AMask, "maskUnits": AMaskUnits, "maskContentUnits": AMaskContentUnits,
	"filter": AFilter, "filterUnits": AFilterUnits, "primitiveUnits": APrimitiveUnits,
	"display": ADisplay, "visibility": AVisibility,
	"marker-start": AMarkerStart, "marker-mid": AMarkerMid, "marker-end": AMarkerEnd,
	"marker":      AUnknown, // shorthand, expanded before lookup
	"paint-order": APaintOrder,
	"font-family": AFontFamily, "font-size": AFontSize, "font-style": AFontStyle,
	"font-weight": AFontWeight, "font-stretch": AFontStretch, "font-variant": AFontVariant,
	"letter-spacing": ALetterSpacing, "word-spacing": AWordSpacing,
	"text-anchor": ATextAnchor, "text-decoration": ATextDecoration,
	"writing-mode": AWritingMode, "dominant-baseline": ADominantBaseline,
	"alignment-baseline": AAlignmentBaseline, "baseline-shift": ABaselineShift,
	"startOffset": AStartOffset, "rotate": ARotate, "dx": ADx, "dy": ADy,
	"mix-blend-mode": ABlendMode, "isolation": AIsolation,
	"shape-rendering": AShapeRendering, "text-rendering": ATextRendering,
	"image-rendering": AImageRendering,
	"color-interpolation-filters": AColorInterpolationFilters,
	"flood-color":                 AFloodColor, "flood-opacity": AFloodOpacity,
	"lighting-color": ALightingColor,
	"in":             AIn, "in2": AIn2, "result": AResult, "type": AType, "mode": AMode,
	"media": AMedia, "systemLanguage": ASystemLanguage,
	"requiredFeatures": ARequiredFeatures, "requiredExtensions": ARequiredExtensions,
	"pathLength": APathLength,

	"stdDeviation": AStdDeviation, "values": AValues, "operator": AOperator,
	"scale": AScale, "radius": ARadius,
	"k1": AK1, "k2": AK2, "k3": AK3, "k4": AK4,
	"tableValues": ATableValues, "slope": ASlope, "intercept": AIntercept,
	"amplitude": AAmplitude, "exponent": AExponent,
	"xChannelSelector": AXChannelSelector, "yChannelSelector": AYChannelSelector,
	"numOctaves": ANumOctaves, "baseFrequency": ABaseFrequency, "seed": ASeed,
	"stitchTiles": AStitchTiles, "kernelMatrix": AKernelMatrix,
	"divisor": ADivisor, "bias": ABias, "targetX": ATargetX, "targetY": ATargetY,
	"edgeMode": AEdgeMode, "preserveAlpha": APreserveAlpha,
	"surfaceScale": ASurfaceScale, "diffuseConstant": ADiffuseConstant,
	"specularConstant": ASpecularConstant, "specularExponent": ASpecularExponent,
	"elevation": AElevation, "azimuth": AAzimuth,
	"pointsAtX": APointsAtX, "pointsAtY": APointsAtY, "pointsAtZ": APointsAtZ,
}

// ParseAId maps an attribute's local name to its AId, or (0, false) when the
// attribute is not recognized (and so is dropped unless namespaced SVG/
// XLink/XML, which is handled by the caller before ever reaching this map).
func ParseAId(local string) (AId, bool) {
	id, ok := attrNames[local]
	if !ok || id == AUnknown {
		return 0, false
	}
	return id, true
}

// inheritableAttrs is the closed list from
var inheritableAttrs = map[AId]bool{
	AFill: true, AFillRule: true, AStroke: true, AStrokeWidth: true,
	AStrokeLinecap: true, AStrokeLinejoin: true, AStrokeMiterlimit: true,
	AStrokeDasharray: true, AStrokeDashoffset: true, AStrokeOpacity: true,
	AFontFamily: true, AFontSize: true, AFontStyle: true, AFontWeight: true,
	AFontStretch: true, AFontVariant: true,
	ALetterSpacing: true, AWordSpacing: true, ATextAnchor: true,
	AWritingMode: true, AVisibility: true, AColor: true,
	AColorInterpolationFilters: true, AShapeRendering: true,
	ATextRendering: true, AImageRendering: true, AClipRule: true,
	ADominantBaseline: true, AAlignmentBaseline: true, APaintOrder: true,
}

func IsInheritable(id AId) bool { return inheritableAttrs[id] }

// attrDefaults is the default-value table consulted when `inherit`
// resolution runs off the top of the tree.
var attrDefaults = map[AId]string{
	AFill: "black", AStroke: "none", AOpacity: "1",
	AFillRule: "nonzero", AClipRule: "nonzero",
	AFillOpacity: "1", AStrokeOpacity: "1", AStrokeWidth: "1",
	AStrokeLinecap: "butt", AStrokeLinejoin: "miter", AStrokeMiterlimit: "4",
	AFontFamily: "sans-serif", AFontSize: "medium", AFontStyle: "normal",
	AFontWeight: "normal", AFontStretch: "normal",
	AWritingMode: "lr-tb", AVisibility: "visible", ADisplay: "inline",
	AColor: "black", ATextAnchor: "start",
	AShapeRendering: "auto", ATextRendering: "auto", AImageRendering: "auto",
	AColorInterpolationFilters: "linearRGB",
}
