package io

import (
	"fmt"
	"io"
	"strings"
)

type XmlAttr struct {
	Name  string
	Value string
}

func (x XmlAttr) String() string {
	return fmt.Sprint(x.Name, "=\"", XmlEscapeAttr(x.Value), "\"")
}

var xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
var xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")

func XmlEscapeText(in string) string { return xmlTextEscaper.Replace(in) }
func XmlEscapeAttr(in string) string { return xmlAttrEscaper.Replace(in) }

type XmlFile struct {
	*StructuredFile
}

func NewXmlFile(dst io.Writer) *XmlFile {
	return &XmlFile{
		StructuredFile: NewStructuredFile(dst, STRUCTUREDFILE_DEFAULT_TAB),
	}
}

func joinXmlAttrs(attributes []XmlAttr) string {
	parts := make([]string, len(attributes))
	for i, it := range attributes {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

func (xml *XmlFile) Declaration() *XmlFile {
	xml.Println(`<?xml version="1.0" encoding="utf-8"?>`)
	return xml
}
func (xml *XmlFile) Comment(text string) *XmlFile {
	xml.Println(fmt.Sprint("<!-- ", text, " -->"))
	return xml
}

// Tag writes <name attrs>children</name>, or <name attrs /> when closure is
// nil. A non-nil closure writing nothing still produces an open/close pair.
func (xml *XmlFile) Tag(name string, closure func(), attributes ...XmlAttr) *XmlFile {
	if len(attributes) > 0 {
		xml.Print("<%s %s", name, joinXmlAttrs(attributes))
	} else {
		xml.Print("<%s", name)
	}
	if closure != nil {
		xml.Println(">")
		xml.ScopeIndent(closure)
		xml.Println("</%s>", name)
	} else {
		xml.Println(" />")
	}
	return xml
}

// InnerString skips empty values.
func (xml *XmlFile) InnerString(name, value string, attributes ...XmlAttr) *XmlFile {
	if len(value) > 0 {
		xml.InnerStringAlways(name, value, attributes...)
	}
	return xml
}
func (xml *XmlFile) InnerStringAlways(name, value string, attributes ...XmlAttr) *XmlFile {
	if len(attributes) > 0 {
		xml.Println("<%s %s>%s</%s>", name, joinXmlAttrs(attributes), XmlEscapeText(value), name)
	} else {
		xml.Println("<%s>%s</%s>", name, XmlEscapeText(value), name)
	}
	return xml
}
