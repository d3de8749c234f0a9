package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/mind-engage/mcq-reviewer/internal/mcq"
)

const qtiNamespace = "http://www.imsglobal.org/xsd/imsqti_v2p1"

// QTI packages the questions as QTI 2.1 single-choice items with an IMS
// manifest. Questions without an answer key get an empty correctResponse.
func QTI(qs []mcq.Question) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	mf := imsManifest{Resources: []imsResource{}}
	for i, q := range qs {
		id := fmt.Sprintf("q%03d", i+1)
		name := id + ".xml"
		mf.Resources = append(mf.Resources, imsResource{
			Identifier: id,
			Type:       "imsqti_item_xmlv2p1",
			Href:       name,
			Files:      []imsFile{{Href: name}},
		})
		if err := writeXML(zw, name, qtiItem(id, q)); err != nil {
			return nil, err
		}
	}
	if err := writeXML(zw, "imsmanifest.xml", mf); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXML(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	b, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// --- mini XML model (export only) ---

type imsManifest struct {
	XMLName   xml.Name      `xml:"manifest"`
	Resources []imsResource `xml:"resources>resource"`
}
type imsResource struct {
	Identifier string    `xml:"identifier,attr"`
	Type       string    `xml:"type,attr"`
	Href       string    `xml:"href,attr"`
	Files      []imsFile `xml:"file"`
}
type imsFile struct {
	Href string `xml:"href,attr"`
}

type assessmentItem struct {
	XMLName     xml.Name            `xml:"assessmentItem"`
	Xmlns       string              `xml:"xmlns,attr"`
	Identifier  string              `xml:"identifier,attr"`
	Title       string              `xml:"title,attr"`
	Response    responseDeclaration `xml:"responseDeclaration"`
	Prompt      string              `xml:"itemBody>p"`
	Interaction choiceInteraction   `xml:"itemBody>choiceInteraction"`
	Feedback    string              `xml:"modalFeedback,omitempty"`
}
type responseDeclaration struct {
	Identifier  string   `xml:"identifier,attr"`
	Cardinality string   `xml:"cardinality,attr"`
	BaseType    string   `xml:"baseType,attr"`
	Correct     []string `xml:"correctResponse>value"`
}
type choiceInteraction struct {
	ResponseIdentifier string         `xml:"responseIdentifier,attr"`
	MaxChoices         int            `xml:"maxChoices,attr"`
	Choices            []simpleChoice `xml:"simpleChoice"`
}
type simpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Text       string `xml:",chardata"`
}

func qtiItem(id string, q mcq.Question) assessmentItem {
	it := assessmentItem{
		Xmlns:      qtiNamespace,
		Identifier: id,
		Title:      fmt.Sprintf("Question %d", q.Number),
		Response: responseDeclaration{
			Identifier:  "RESPONSE",
			Cardinality: "single",
			BaseType:    "identifier",
		},
		Prompt: q.Question,
		Interaction: choiceInteraction{
			ResponseIdentifier: "RESPONSE",
			MaxChoices:         1,
		},
		Feedback: q.Explanation,
	}
	if q.AnswerKey != "" {
		it.Response.Correct = []string{q.AnswerKey}
	}
	for _, o := range q.Options {
		it.Interaction.Choices = append(it.Interaction.Choices, simpleChoice{Identifier: o.Key, Text: o.Text})
	}
	return it
}
