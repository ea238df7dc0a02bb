// Package visitor defines the push-based protocol every mapping decoder
// drives and every mapping consumer implements.
//
// Call order:
//
//	VisitHeader -> VisitNamespaces -> VisitMetadata*
//	VisitContent ->
//	  VisitClass -> VisitDstName* -> VisitElementContent -> VisitComment*
//	    VisitField | VisitMethod -> VisitDstName* -> VisitDstDesc* -> VisitElementContent -> VisitComment*
//	      VisitMethodArg | VisitMethodVar -> VisitDstName* -> VisitElementContent -> VisitComment*
//	VisitEnd
//
// Every call returning a bool may prune: false on an element skips the
// element and everything nested under it; false from VisitHeader or
// VisitContent skips that phase; false from VisitEnd requests another pass.
//
// Absent names and descriptors are passed as empty strings.
package visitor
