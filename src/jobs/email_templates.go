package jobs

import (
	"bytes"
	_ "embed"
	"html/template"
)

type ReceivedEmailData struct {
	Name          string
	ApplicationID string
}

//go:embed application_received.html
var receivedEmailHTML string

var receivedEmailTmpl = template.Must(template.New("received").Parse(receivedEmailHTML))

const receivedEmailSubject = "FLUX: we received your application"

func RenderReceivedEmailHTML(data ReceivedEmailData) (string, error) {
	if data.Name == "" {
		data.Name = "there"
	}
	var buf bytes.Buffer
	if err := receivedEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
