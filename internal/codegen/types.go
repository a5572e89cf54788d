// Copyright (c) 2026 SigmaFox Authors. All rights reserved.

package codegen

import "github.com/magictrick-dev/sigmafox/internal/ast"

// cppScalarType maps a DataKind to its scalar C++ spelling (spec.md §4.8's
// emission table, "deduced C++ type").
func cppScalarType(dk ast.DataKind) string {
	switch dk {
	case ast.KindInteger:
		return "long"
	case ast.KindReal:
		return "double"
	case ast.KindComplex:
		return "std::complex<double>"
	case ast.KindString:
		return "std::string"
	case ast.KindVoid:
		return "void"
	default:
		// Unknown/error kinds reaching codegen indicate a semantic error the
		// driver should already have turned into a non-zero exit before this
		// point; emit something that at least compiles as a placeholder.
		return "auto"
	}
}

// cppType maps a full (DataKind, StructureKind, length) triple to the C++
// spelling used for a variable declaration or parameter.
func cppType(dk ast.DataKind, sk ast.StructureKind, length int) string {
	scalar := cppScalarType(dk)
	if sk == ast.StructVector {
		return "std::vector<" + scalar + ">"
	}
	return scalar
}
