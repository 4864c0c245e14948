// Package animate turns the paths of a layer into CSS "draw-on" animations.
//
// # Overview
//
// Animating a layer takes three steps:
//
//  1. [Analyzer.Measure] collects the layer's path elements in document order
//     and measures each one. A path made of several sub-paths is sized by its
//     longest sub-path, the longest continuous stroke.
//  2. [Allocate] splits a shared [0, 100] percent timeline between the paths
//     in proportion to their lengths, so paths draw one after another.
//  3. [Synthesizer.Apply] writes one keyframes rule per path plus one class
//     rule with the timing function into the document's style sheet.
//
// Each path rule hides the stroke with stroke-dashoffset equal to the path
// length until the path's start percentage and reveals it fully by its end
// percentage:
//
//	#p1 {
//	  animation-name: p1;
//	  stroke-dasharray: 10 !important;
//	}
//	@keyframes p1 {
//	  0%, 0% {stroke-dashoffset: 10;}
//	  40%, 100% {stroke-dashoffset: 0;}
//	}
//
// Rules are keyed by id (pathanim_<path id> for paths, the animation id for
// the class rule), so applying a layer twice replaces its rules instead of
// duplicating them.
//
// # Rounding
//
// Every path's share is rounded to three decimals before it is added to the
// running end percentage, and the end is clamped at 100. Rounding drift is
// not redistributed: the last path may end slightly below 100.
package animate
