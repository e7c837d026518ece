package contract

import (
	"bytes"
	"fmt"
	"html/template"

	"pawnshop-backend/internal/domain/loan"
)

const baseTmpl = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>Contract No. {{.Data.Code}} — issued {{.Data.IssuedDate.Format "2006-01-02"}}</p>
<h2>Parties</h2>
<p><strong>{{.Data.Company.Name}}</strong>, {{.Data.Company.Address}},
registration no. {{.Data.Company.RegistrationNo}},
represented by {{.Data.Company.Representative}} (the Company)</p>
<p><strong>{{.Data.Customer.Name}}</strong>, ID {{.Data.Customer.IDNumber}},
{{.Data.Customer.Address}}, tel. {{.Data.Customer.Phone}} (the Customer)</p>
<h2>Subject</h2>
<p>Pledged asset: {{.Data.Asset}}</p>
<p>Principal: {{.Data.Principal}} (smallest currency unit), package {{.Data.Package}}</p>
{{block "body" .}}{{end}}
</body>
</html>`

var templates = map[loan.ContractType]*template.Template{
	loan.ContractAssetPledge: mustParse("asset_pledge", `{{define "body"}}
<h2>Payment schedule</h2>
<table>
{{range .Data.Milestones}}<tr><td>{{.Seq}}</td><td>{{.DueDate.Format "2006-01-02"}}</td><td>{{.Label}}</td></tr>
{{end}}</table>
<p>The Customer pledges the asset above as security for the principal received.</p>
{{end}}`),
	loan.ContractAssetLease: mustParse("asset_lease", `{{define "body"}}
<p>The Company leases the pledged asset back to the Customer for {{.Data.LeaseMonths}} month(s).</p>
<h2>Lease schedule</h2>
<table>
{{range .Data.Milestones}}<tr><td>{{.Seq}}</td><td>{{.DueDate.Format "2006-01-02"}}</td><td>{{.Label}}</td></tr>
{{end}}</table>
{{end}}`),
	loan.ContractFullPayment: mustParse("full_payment", `{{define "body"}}
<p>The Company confirms full settlement of {{.Data.SettledAmount}} (smallest currency unit)
and releases the pledged asset to the Customer.</p>
{{end}}`),
	loan.ContractAssetDisposal: mustParse("asset_disposal", `{{define "body"}}
<p>{{.Data.Authorization}}</p>
{{end}}`),
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.Must(template.New(name).Parse(baseTmpl)).Parse(body))
}

var titles = map[loan.ContractType]string{
	loan.ContractAssetPledge:   "Asset Pledge Agreement",
	loan.ContractAssetLease:    "Asset Lease Agreement",
	loan.ContractFullPayment:   "Full Payment Confirmation",
	loan.ContractAssetDisposal: "Asset Disposal Authorization",
}

// Render produces the document file for one payload.
func Render(p Payload) ([]byte, error) {
	t, ok := templates[p.ContractType()]
	if !ok {
		return nil, fmt.Errorf("no template for contract type %q", p.ContractType())
	}
	var buf bytes.Buffer
	err := t.Execute(&buf, struct {
		Title string
		Data  Payload
	}{Title: titles[p.ContractType()], Data: p})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", p.ContractType(), err)
	}
	return buf.Bytes(), nil
}
