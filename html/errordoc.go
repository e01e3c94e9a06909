package html

import "tuibrowse/element"

// ErrorDocument describes a page that could not be loaded.
func ErrorDocument(url string, err error) *Document {
	return &Document{
		Title: "Error",
		Elements: []element.Element{
			element.Heading{Text: "Error Loading Page", Level: 1},
			paragraph("Could not load " + url),
			paragraph("Error: " + err.Error()),
			paragraph("Please check the URL and your internet connection."),
		},
	}
}

// UnexpectedErrorDocument describes a failure after the page was fetched.
func UnexpectedErrorDocument(err error) *Document {
	return &Document{
		Title: "Unexpected Error",
		Elements: []element.Element{
			element.Heading{Text: "An Unexpected Error Occurred", Level: 1},
			paragraph("Error: " + err.Error()),
		},
	}
}

func paragraph(text string) element.Paragraph {
	return element.Paragraph{Parts: []element.Element{element.Text{Text: text}}}
}
