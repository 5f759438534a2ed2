package doxygen

import (
	"github.com/dhamidi/csonar/clang"
)

type commandClass int

const (
	inlineCommand commandClass = iota
	blockCommand
	paramCommand
	tparamCommand
	verbatimBlock
	verbatimLine
)

type command struct {
	class   commandClass
	numArgs int
	render  clang.RenderKind
	end     string
}

var commands = map[string]command{
	// inline
	"b":      {class: inlineCommand, numArgs: 1, render: clang.RenderBold},
	"c":      {class: inlineCommand, numArgs: 1, render: clang.RenderMonospaced},
	"p":      {class: inlineCommand, numArgs: 1, render: clang.RenderMonospaced},
	"a":      {class: inlineCommand, numArgs: 1, render: clang.RenderEmphasized},
	"e":      {class: inlineCommand, numArgs: 1, render: clang.RenderEmphasized},
	"em":     {class: inlineCommand, numArgs: 1, render: clang.RenderEmphasized},
	"anchor": {class: inlineCommand, numArgs: 1, render: clang.RenderAnchor},
	"ref":    {class: inlineCommand, numArgs: 1},
	"n":      {class: inlineCommand},

	// block
	"brief":      {class: blockCommand},
	"short":      {class: blockCommand},
	"details":    {class: blockCommand},
	"return":     {class: blockCommand},
	"returns":    {class: blockCommand},
	"result":     {class: blockCommand},
	"retval":     {class: blockCommand},
	"note":       {class: blockCommand},
	"warning":    {class: blockCommand},
	"attention":  {class: blockCommand},
	"deprecated": {class: blockCommand},
	"see":        {class: blockCommand},
	"sa":         {class: blockCommand},
	"author":     {class: blockCommand},
	"authors":    {class: blockCommand},
	"since":      {class: blockCommand},
	"version":    {class: blockCommand},
	"date":       {class: blockCommand},
	"copyright":  {class: blockCommand},
	"pre":        {class: blockCommand},
	"post":       {class: blockCommand},
	"invariant":  {class: blockCommand},
	"remark":     {class: blockCommand},
	"remarks":    {class: blockCommand},
	"todo":       {class: blockCommand},
	"bug":        {class: blockCommand},
	"par":        {class: blockCommand},
	"li":         {class: blockCommand},
	"throw":      {class: blockCommand, numArgs: 1},
	"throws":     {class: blockCommand, numArgs: 1},
	"exception":  {class: blockCommand, numArgs: 1},
	"defgroup":   {class: blockCommand, numArgs: 1},
	"ingroup":    {class: blockCommand, numArgs: 1},
	"addtogroup": {class: blockCommand, numArgs: 1},

	"param":  {class: paramCommand},
	"arg":    {class: paramCommand},
	"tparam": {class: tparamCommand},

	// verbatim blocks
	"code":      {class: verbatimBlock, end: "endcode"},
	"verbatim":  {class: verbatimBlock, end: "endverbatim"},
	"dot":       {class: verbatimBlock, end: "enddot"},
	"msc":       {class: verbatimBlock, end: "endmsc"},
	"htmlonly":  {class: verbatimBlock, end: "endhtmlonly"},
	"latexonly": {class: verbatimBlock, end: "endlatexonly"},
	"xmlonly":   {class: verbatimBlock, end: "endxmlonly"},
	"manonly":   {class: verbatimBlock, end: "endmanonly"},
	"rtfonly":   {class: verbatimBlock, end: "endrtfonly"},
	"f$":        {class: verbatimBlock, end: "f$"},
	"f[":        {class: verbatimBlock, end: "f]"},
	"f{":        {class: verbatimBlock, end: "f}"},

	// verbatim lines
	"fn":        {class: verbatimLine},
	"var":       {class: verbatimLine},
	"property":  {class: verbatimLine},
	"typedef":   {class: verbatimLine},
	"def":       {class: verbatimLine},
	"overload":  {class: verbatimLine},
	"struct":    {class: verbatimLine},
	"union":     {class: verbatimLine},
	"class":     {class: verbatimLine},
	"enum":      {class: verbatimLine},
	"namespace": {class: verbatimLine},
	"interface": {class: verbatimLine},
	"protocol":  {class: verbatimLine},
	"category":  {class: verbatimLine},
	"file":      {class: verbatimLine},
}

// htmlTags lists the tag names recognized as HTML; any other '<' is text.
var htmlTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "big": true, "blockquote": true,
	"br": true, "caption": true, "center": true, "cite": true, "code": true,
	"dd": true, "del": true, "dfn": true, "div": true, "dl": true, "dt": true,
	"em": true, "font": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "i": true, "img": true, "ins": true,
	"kbd": true, "li": true, "ol": true, "p": true, "pre": true, "s": true,
	"small": true, "span": true, "strike": true, "strong": true, "sub": true,
	"sup": true, "table": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "tr": true, "tt": true, "u": true, "ul": true,
	"var": true,
}

// escapes are the characters a backslash or at-sign may escape in running
// text.
const escapes = `\@&$#<>%".:`
