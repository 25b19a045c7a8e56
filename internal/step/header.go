package step

import (
	"fmt"
	"strings"

	"github.com/ifcstep/ifcstep/internal/exc"
	"github.com/ifcstep/ifcstep/internal/idl"
)

const (
	KeywordFileDescription = "FILE_DESCRIPTION"
	KeywordFileName        = "FILE_NAME"
	KeywordFileSchema      = "FILE_SCHEMA"
)

// Schema is an IFC schema identifier in its canonical spelling.
type Schema string

const (
	SchemaIFC2X3     Schema = "IFC2X3"
	SchemaIFC2X3TC1  Schema = "IFC2X3_TC1"
	SchemaIFC4       Schema = "IFC4"
	SchemaIFC4X1     Schema = "IFC4X1"
	SchemaIFC4X2     Schema = "IFC4X2"
	SchemaIFC4X3     Schema = "IFC4X3"
	SchemaIFC4X3TC1  Schema = "IFC4X3_TC1"
	SchemaIFC4X3ADD1 Schema = "IFC4X3_ADD1"
	SchemaIFC4X3ADD2 Schema = "IFC4X3_ADD2"
)

var schemas = map[string]Schema{}

func init() {
	for _, s := range []Schema{
		SchemaIFC2X3, SchemaIFC2X3TC1, SchemaIFC4, SchemaIFC4X1, SchemaIFC4X2,
		SchemaIFC4X3, SchemaIFC4X3TC1, SchemaIFC4X3ADD1, SchemaIFC4X3ADD2,
	} {
		schemas[string(s)] = s
	}
}

// ParseSchema matches a schema identifier regardless of case.
func ParseSchema(name string) (Schema, bool) {
	s, ok := schemas[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

func (s Schema) EncodeStep(e *Encoder) {
	e.Label(string(s))
}

func DecodeSchema(d *Decoder) Schema {
	tok := d.Next("schema identifier", idl.TokenTypeString)
	if tok == nil {
		return ""
	}
	s, ok := ParseSchema(tok.Value)
	if !ok {
		d.FailAt(tok, exc.CodeUnsupportedSchema, fmt.Sprintf("unsupported schema %s", tok))
		return ""
	}
	return s
}

type FileDescription struct {
	Description         List[Label]
	ImplementationLevel Label
}

func (h *FileDescription) Keyword() string {
	return KeywordFileDescription
}

func (h *FileDescription) DecodeStep(d *Decoder) {
	h.Description = DecodeList(d, DecodeLabel)
	h.ImplementationLevel = DecodeLabel(d)
}

func (h *FileDescription) EncodeStep(e *Encoder) {
	h.Description.EncodeStep(e)
	h.ImplementationLevel.EncodeStep(e)
}

type FileName struct {
	Name                Label
	TimeStamp           Label
	Author              List[Label]
	Organization        List[Label]
	PreprocessorVersion Label
	OriginatingSystem   Label
	Authorization       Label
}

func (h *FileName) Keyword() string {
	return KeywordFileName
}

func (h *FileName) DecodeStep(d *Decoder) {
	h.Name = DecodeLabel(d)
	h.TimeStamp = DecodeLabel(d)
	h.Author = DecodeList(d, DecodeLabel)
	h.Organization = DecodeList(d, DecodeLabel)
	h.PreprocessorVersion = DecodeLabel(d)
	h.OriginatingSystem = DecodeLabel(d)
	h.Authorization = DecodeLabel(d)
}

func (h *FileName) EncodeStep(e *Encoder) {
	h.Name.EncodeStep(e)
	h.TimeStamp.EncodeStep(e)
	h.Author.EncodeStep(e)
	h.Organization.EncodeStep(e)
	h.PreprocessorVersion.EncodeStep(e)
	h.OriginatingSystem.EncodeStep(e)
	h.Authorization.EncodeStep(e)
}

type FileSchema struct {
	Schemas List[Schema]
}

func (h *FileSchema) Keyword() string {
	return KeywordFileSchema
}

func (h *FileSchema) DecodeStep(d *Decoder) {
	h.Schemas = DecodeList(d, DecodeSchema)
}

func (h *FileSchema) EncodeStep(e *Encoder) {
	h.Schemas.EncodeStep(e)
}

// Header is the HEADER section. Entities other than the three mandatory
// ones are kept as records and written after them.
type Header struct {
	Description FileDescription
	Name        FileName
	Schema      FileSchema
	Extra       []*Record
}

// NewHeader returns the header written for new files.
func NewHeader(schema Schema) Header {
	return Header{
		Description: FileDescription{
			Description:         ListOf[Label]("ViewDefinition [CoordinationView]"),
			ImplementationLevel: "2;1",
		},
		Name: FileName{
			Author:       ListOf[Label](""),
			Organization: ListOf[Label](""),
		},
		Schema: FileSchema{Schemas: ListOf(schema)},
	}
}

// FirstSchema returns the first declared schema.
func (h *Header) FirstSchema() (Schema, bool) {
	if len(h.Schema.Schemas) == 0 {
		return "", false
	}
	return h.Schema.Schemas[0], true
}

func (h *Header) write(b *strings.Builder) {
	b.WriteString("HEADER;\n")
	for _, e := range []Entity{&h.Description, &h.Name, &h.Schema} {
		writeEntity(b, e)
		b.WriteByte('\n')
	}
	for _, r := range h.Extra {
		writeEntity(b, r)
		b.WriteByte('\n')
	}
	b.WriteString("ENDSEC;\n")
}
