package notesv1

import "embed"

// SwaggerSpecs OpenAPI описание HTTP gateway
//
//go:embed notes.swagger.json
var SwaggerSpecs embed.FS
