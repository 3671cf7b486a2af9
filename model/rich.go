package model

import "github.com/beevik/etree"

// RichGroup carries the rich documentation attributes (icon, see, fpi,
// xml:lang, xml:space). Their presence makes a construct non-minimal.
type RichGroup struct {
	Icon     string
	See      string
	FPI      string
	XMLLang  string
	XMLSpace string
}

// fillXML writes the group's attributes onto e in fixed order.
func (g *RichGroup) fillXML(e *etree.Element) {
	setAttrIfNotEmpty(e, AttrIcon, g.Icon)
	setAttrIfNotEmpty(e, AttrSee, g.See)
	setAttrIfNotEmpty(e, AttrFPI, g.FPI)
	setAttrIfNotEmpty(e, "xml:lang", g.XMLLang)
	setAttrIfNotEmpty(e, "xml:space", g.XMLSpace)
}

// isEmpty reports whether no attribute of the group is set.
func (g *RichGroup) isEmpty() bool {
	return g.Icon == "" && g.See == "" && g.FPI == "" && g.XMLLang == "" && g.XMLSpace == ""
}

// LinkableGroup carries the cross-reference attributes (role, subject). They
// survive into the minimal syntax, unlike RichGroup.
type LinkableGroup struct {
	Role    string
	Subject string
}

func (g *LinkableGroup) fillXML(e *etree.Element) {
	setAttrIfNotEmpty(e, AttrRole, g.Role)
	setAttrIfNotEmpty(e, AttrSubject, g.Subject)
}

func (g *LinkableGroup) isEmpty() bool { return g.Role == "" && g.Subject == "" }
