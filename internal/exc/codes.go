package exc

const (
	CodeUnknownFatal                  = "S0000"
	CodeFileNotFound                  = "S0001"
	CodeUnsuportedFileSystemOperation = "S0002"
	CodePermissionDenied              = "S0003"
	CodeUnsupportedFileFormat         = "S0004"
	CodeUnexpectedEOF                 = "S0005"
	CodeInvalidNumber                 = "S0007"
	CodeInvalidToken                  = "S0008"
	CodeUnexpectedToken               = "S0010"
	CodeUnknownEnumeration            = "S0011"
	CodeValueOutOfRange               = "S0012"
	CodeUnsupportedSchema             = "S0013"
	CodeMissingHeader                 = "S0014"
	CodeDuplicateReference            = "S0020"
	CodeInvalidReference              = "S0021"
	CodeDanglingReference             = "S0030"
	CodeUnexpectedReferenceType       = "S0031"
)

const (
	CodeEOF = "_EOF_"
)

var defaultNonFatal = map[string]bool{
	CodeDanglingReference:       true,
	CodeUnexpectedReferenceType: true,
}
