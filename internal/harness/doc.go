// Package harness runs cover scenarios: a metadata record, the expected
// theme and symbol, and assertions over the composed layer fragments.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: democracy_transition
//	description: "Transition essays take the democracy palette"
//	themes: ../themes            # optional CUE catalog directory
//	options:                     # optional layer counts
//	  stars: 25
//	  particles: 20
//	article:
//	  title: The Long Transition
//	  tags: [politics, history]
//	  slug: democracy-transition
//	expect:
//	  theme: democracy
//	  symbol: diamond
//	  layers: 8
//	assertions:
//	  - type: element_count
//	    layer: starfield
//	    element: circle
//	    count: 25
//	  - type: fragment_contains
//	    layer: symbol
//	    text: rotate(45
//
// # Assertion Types
//
//   - fragment_contains: The layer's fragment contains text
//   - fragment_excludes: The layer's fragment does not contain text
//   - element_count: The layer's fragment has exactly count elements
//   - layer_order: The named layers appear in this relative order
//
// # Golden Files
//
// A scenario's composed document can be compared byte for byte with a
// golden file. Composition is deterministic, so golden files only change
// when the drawing code does.
package harness
