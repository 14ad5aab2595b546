package docmodel

import "strconv"

// Kind identifies what a Node documents. Values mirror TypeDoc's ReflectionKind
// bit values so that ascending Kind order matches TypeDoc's own ordering.
type Kind int

const (
	KindProject              Kind = 1
	KindModule               Kind = 2
	KindNamespace            Kind = 4
	KindEnum                 Kind = 8
	KindEnumMember           Kind = 16
	KindVariable             Kind = 32
	KindFunction             Kind = 64
	KindClass                Kind = 128
	KindInterface            Kind = 256
	KindConstructor          Kind = 512
	KindProperty             Kind = 1024
	KindMethod               Kind = 2048
	KindCallSignature        Kind = 4096
	KindIndexSignature       Kind = 8192
	KindConstructorSignature Kind = 16384
	KindParameter            Kind = 32768
	KindTypeLiteral          Kind = 65536
	KindTypeParameter        Kind = 131072
	KindAccessor             Kind = 262144
	KindGetSignature         Kind = 524288
	KindSetSignature         Kind = 1048576
	KindTypeAlias            Kind = 2097152
	KindReference            Kind = 4194304
	// KindComponent is not emitted by TypeDoc; plugins tag UI components with it.
	KindComponent Kind = 8388608
)

var kindNames = map[Kind]string{
	KindProject:              "Project",
	KindModule:               "Module",
	KindNamespace:            "Namespace",
	KindEnum:                 "Enum",
	KindEnumMember:           "EnumMember",
	KindVariable:             "Variable",
	KindFunction:             "Function",
	KindClass:                "Class",
	KindInterface:            "Interface",
	KindConstructor:          "Constructor",
	KindProperty:             "Property",
	KindMethod:               "Method",
	KindCallSignature:        "CallSignature",
	KindIndexSignature:       "IndexSignature",
	KindConstructorSignature: "ConstructorSignature",
	KindParameter:            "Parameter",
	KindTypeLiteral:          "TypeLiteral",
	KindTypeParameter:        "TypeParameter",
	KindAccessor:             "Accessor",
	KindGetSignature:         "GetSignature",
	KindSetSignature:         "SetSignature",
	KindTypeAlias:            "TypeAlias",
	KindReference:            "Reference",
	KindComponent:            "Component",
}

// String returns the TypeDoc name of the kind, or Kind(n) for unknown values.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsContainer reports whether nodes of this kind only group other symbols.
func (k Kind) IsContainer() bool {
	return k == KindModule || k == KindNamespace || k == KindProject
}
