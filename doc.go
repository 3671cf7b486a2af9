// Package goschematron validates XML documents against Schematron schemas:
//
//   - An in-memory rule model with structural invariant checking (model)
//   - Execution of a compiled validation program against an XML instance
//   - A typed structured report in the SVRL grammar (svrl)
//   - A pluggable validity policy reducing a report to VALID/INVALID
//
// Design policy:
//   - Keep only public APIs in the root package; the program compiler and
//     executor live under internal/engine.
//   - The XPath evaluator and the XML document trees are external capabilities
//     (antchfx/xpath, antchfx/xmlquery, beevik/etree) behind small interfaces.
//   - One Schematron instance holds mutable configuration and must not be
//     shared across goroutines; separate instances are independent.
//
// Typical usage:
//
//	s := goschematron.FromSource(goschematron.XMLFile("invoice.sch"))
//	ok := s.IsValid(goschematron.XMLFile("invoice.xml"))
//	report, err := s.ApplyValidationToReport(goschematron.XMLFile("invoice.xml"))
package goschematron
