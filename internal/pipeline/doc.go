// Package pipeline loads declarative frame-graph descriptions from HCL
// files and declares them onto a framegraph.Graph.
//
// A pipeline file declares textures, buffers, external resources, ordered
// passes and extractions:
//
//	variables {
//	  width  = 1920
//	  height = 1080
//	}
//
//	texture "scene_color" {
//	  width  = var.width
//	  height = var.height
//	  format = "rgba16f"
//	  usage  = ["render_target", "shader_resource"]
//	}
//
//	pass "tonemap" {
//	  scope  = "post"
//	  runner = "draw"
//	  param "scene_color" {
//	    access = "read"
//	    slot   = 0
//	  }
//	  param "backbuffer" {
//	    access  = "write"
//	    binding = "render_target"
//	  }
//	}
//
//	extract {
//	  texture = "scene_color"
//	}
//
// Pass callbacks come from a runner registry: the `runner` attribute names
// a registered factory that turns the declared parameter table into a
// recording callback.
package pipeline
