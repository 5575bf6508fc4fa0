// Package gradgen is the core of a CSS gradient editor: a validated
// gradient model, its CSS rendering and the share-token codec that puts a
// gradient into a URL.
//
// # Editing
//
// State holds the gradient. Mutators clamp their inputs and never leave
// fewer than two color stops:
//
//	s := gradgen.NewState()
//	s.SetKind(gradgen.Conic)
//	s.SetAngle(45)
//	s.AddStop()
//	css := gradgen.Render(s).Declaration
//
// Editor wraps a State for interactive hosts (the terminal editor and the
// web server) and reports renders and notices through Hooks.
//
// # Sharing
//
// Encode and Decode convert a State to and from the base64 token carried
// in the gradient query parameter:
//
//	link, err := gradgen.ShareURL("https://example.com/", s)
//	token, _ := gradgen.TokenFromURL(link)
//	s, err = gradgen.Decode(token)
//
// # Presets
//
// Build renders a directory of YAML, TOML or JSON preset files into one
// stylesheet:
//
//	result, err := gradgen.Build(gradgen.BuildConfig{
//		SourceDir:   "styles/gradients",
//		OutputFile:  "web/gradients.css",
//		ClassPrefix: "gradient-",
//	})
//
// # CLI Tool
//
// gradgen also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/gradgen/cmd/gradgen@latest
package gradgen
