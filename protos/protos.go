// SPDX-License-Identifier: GPL-2.0-or-later

// Package protos holds the message types of the files chisel writes:
//
//	syntax = "proto2";
//	package chisel;
//
//	message History { repeated string entries = 1; }
//	message Mesh    { repeated Brush brushes = 1; }
//	message Brush   { optional int64 id = 1; repeated Face faces = 2; }
//	message Face {
//	  optional int64 side_id = 1;
//	  optional string material = 2;
//	  repeated float normal = 3 [packed = true];   // x y z
//	  repeated float vertices = 4 [packed = true]; // x y z per vertex
//	}
//
// The descriptors are built at init, messages are handled with dynamicpb.
// proto2 keeps strings unchecked, material names and paths need not be UTF-8.
package protos

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

var (
	History protoreflect.MessageDescriptor
	Mesh    protoreflect.MessageDescriptor
	Brush   protoreflect.MessageDescriptor
	Face    protoreflect.MessageDescriptor
)

func field(name string, num int32, label descriptorpb.FieldDescriptorProto_Label, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  label.Enum(),
		Type:   typ.Enum(),
	}
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(name),
		Field: fields,
	}
}

func ref(f *descriptorpb.FieldDescriptorProto, typeName string) *descriptorpb.FieldDescriptorProto {
	f.TypeName = proto.String(typeName)
	return f
}

func packed(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Options = &descriptorpb.FieldOptions{Packed: proto.Bool(true)}
	return f
}

func fileDescriptor() *descriptorpb.FileDescriptorProto {
	const (
		optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED

		tString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
		tInt64   = descriptorpb.FieldDescriptorProto_TYPE_INT64
		tFloat   = descriptorpb.FieldDescriptorProto_TYPE_FLOAT
		tMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("chisel.proto"),
		Package: proto.String("chisel"),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("History",
				field("entries", 1, repeated, tString)),
			message("Mesh",
				ref(field("brushes", 1, repeated, tMessage), ".chisel.Brush")),
			message("Brush",
				field("id", 1, optional, tInt64),
				ref(field("faces", 2, repeated, tMessage), ".chisel.Face")),
			message("Face",
				field("side_id", 1, optional, tInt64),
				field("material", 2, optional, tString),
				packed(field("normal", 3, repeated, tFloat)),
				packed(field("vertices", 4, repeated, tFloat))),
		},
	}
}

func init() {
	fd, err := protodesc.NewFile(fileDescriptor(), nil)
	if err != nil {
		panic(err)
	}
	msgs := fd.Messages()
	History = msgs.ByName("History")
	Mesh = msgs.ByName("Mesh")
	Brush = msgs.ByName("Brush")
	Face = msgs.ByName("Face")
}
