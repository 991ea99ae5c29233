package collector

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medicollector/lib/scrapers/encyc"
)

const reportPageSize = 100

var reportHeaderTemplate = template.Must(template.New("header").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>의약품 수집 리포트 {{.Number}}</title>
<style>
body { font-family: 'Malgun Gothic', sans-serif; margin: 2em; }
h3 { margin-bottom: 0.2em; }
.info-group { margin: 0.4em 0 0.4em 1em; color: #333; }
.exists { color: #2a7a2a; }
.missing { color: #aa3333; }
.medicine-separator { border-bottom: 1px solid #ddd; margin: 1em 0; }
</style>
</head>
<body>
<h1>의약품 수집 리포트 {{.Number}}</h1>
<p>생성 시간: {{.CreatedAt}}</p>
`))

var reportItemTemplate = template.Must(template.New("item").Parse(`<h3>{{.Name}}</h3>
<div class="info-group">ID: {{.Id}} | 영문명: {{.EnglishName}} | 제조사: {{.Company}} | 분류: {{.Classification}} | 보험코드: {{.InsuranceCode}}</div>
<div class="info-group">성상: {{.Appearance}} | 모양: {{.Shape}} | 색깔: {{.Color}} | 크기: {{.Size}} | 식별표기: {{.Identification}} | 분할선: {{.DivisionLine}}</div>
<div class="info-group">
{{range .Checks}}<span class="{{.Class}}">{{.Label}}: {{.State}}</span> {{end}}
</div>
<div class="medicine-separator"></div>
`))

type reportCheck struct {
	Label string
	Class string
	State string
}

type reportItem struct {
	Name           string
	Id             string
	EnglishName    string
	Company        string
	Classification string
	InsuranceCode  string
	Appearance     string
	Shape          string
	Color          string
	Size           string
	Identification string
	DivisionLine   string
	Checks         []reportCheck
}

// Reporter renders collected records into paged html reports for
// manual review, at most 100 records per page.
type Reporter struct {
	dir     string
	file    *os.File
	inPage  int
	pageNum int
}

func NewReporter(dir string) *Reporter {
	return &Reporter{dir: dir}
}

func (r *Reporter) openPage() error {
	err := os.MkdirAll(r.dir, 0777)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}
	number := 1
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "medicine_report_") &&
			strings.HasSuffix(entry.Name(), ".html") {
			number++
		}
	}

	file, err := os.Create(filepath.Join(
		r.dir,
		fmt.Sprintf("medicine_report_%03d.html", number),
	))
	if err != nil {
		return err
	}
	r.file = file
	r.inPage = 0
	r.pageNum = number

	return reportHeaderTemplate.Execute(file, map[string]any{
		"Number":    number,
		"CreatedAt": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (r *Reporter) closePage() error {
	if r.file == nil {
		return nil
	}
	_, err := fmt.Fprintf(
		r.file,
		"<p>완료 시간: %s</p>\n</body>\n</html>\n",
		time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		r.file.Close()
		r.file = nil
		return err
	}
	err = r.file.Close()
	r.file = nil
	return err
}

func check(label, value string) reportCheck {
	if value == "" || value == encyc.NoInformation {
		return reportCheck{Label: label, Class: "missing", State: "없음"}
	}
	return reportCheck{Label: label, Class: "exists", State: "있음"}
}

// Add appends one record to the current report page, rolling over to
// a new page when the current one is full.
func (r *Reporter) Add(doc *encyc.Document) error {
	if r.file == nil || r.inPage >= reportPageSize {
		err := r.closePage()
		if err != nil {
			return err
		}
		err = r.openPage()
		if err != nil {
			return err
		}
	}

	divisionLine := encyc.NoInformation
	if doc.Division != nil {
		divisionLine = doc.Division.Type
	}
	item := reportItem{
		Name:           doc.Get("korean_name"),
		Id:             doc.Get("id"),
		EnglishName:    doc.Get("english_name"),
		Company:        doc.Get("company"),
		Classification: doc.Get("classification"),
		InsuranceCode:  doc.Get("insurance_code"),
		Appearance:     doc.Get("appearance"),
		Shape:          doc.Get("shape"),
		Color:          doc.Get("color"),
		Size:           doc.Get("size"),
		Identification: doc.Get("identification"),
		DivisionLine:   divisionLine,
		Checks: []reportCheck{
			check("성분정보", doc.Get("components")),
			check("효능효과", doc.Get("efficacy")),
			check("용법용량", doc.Get("dosage")),
			check("주의사항", doc.Get("precautions")),
			check("이미지", doc.Get("image_url")),
		},
	}

	err := reportItemTemplate.Execute(r.file, item)
	if err != nil {
		return err
	}
	r.inPage++
	return nil
}

// Finalize closes the report that is currently being written.
func (r *Reporter) Finalize() error {
	return r.closePage()
}
