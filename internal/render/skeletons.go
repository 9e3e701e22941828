package render

import "html/template"

// 八种页面骨架。每个骨架只负责排列：身份信息（仅第一页）、左栏与右栏。
// 区块本身已由 sectionRenderer 渲染为 template.HTML。
const skeletonTemplateString = `
{{define "contact-list"}}<div class="contact contact-list" style="{{.S.Contact}}">
	{{- with .Basics.Email}}<div class="contact-row"><span class="icon" aria-hidden="true">&#9993;</span><span class="break-all">{{.}}</span></div>{{end}}
	{{- with .Basics.Phone}}<div class="contact-row"><span class="icon" aria-hidden="true">&#9742;</span><span>{{.}}</span></div>{{end}}
	{{- with .Basics.Location}}<div class="contact-row"><span class="icon" aria-hidden="true">&#8982;</span><span>{{.}}</span></div>{{end}}
	{{- with .Basics.Website}}<div class="contact-row"><span class="icon" aria-hidden="true">&#8599;</span><span class="break-all">{{.}}</span></div>{{end}}
</div>{{end}}

{{define "contact-stack"}}<div class="contact contact-stack" style="{{.S.Contact}}">
	{{- with .Basics.Email}}<div>{{.}}</div>{{end}}
	{{- with .Basics.Phone}}<div>{{.}}</div>{{end}}
	{{- with .Basics.Website}}<div>{{.}}</div>{{end}}
</div>{{end}}

{{define "sidebar-left"}}<div class="sk sk-sidebar-left">
	<aside class="sl-aside">
	{{- if .Header}}<div class="identity sl-identity">
		{{- with .Photo}}<img class="photo photo-lg photo-round" src="{{.}}" alt="{{$.Basics.FullName}} photo">{{end}}
		<h1 class="name" style="{{.S.Name}}{{.S.AccentColor}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job job-caps muted" style="{{$.S.Job}}">{{.}}</p>{{end}}
		{{template "contact-list" .}}
	</div>{{end}}
	{{- range .Left}}{{.}}{{end}}
	</aside>
	<main class="sl-main">{{range .Right}}{{.}}{{end}}</main>
</div>{{end}}

{{define "header-right-aside"}}<div class="sk sk-header-right-aside">
	{{- if .Header}}<header class="identity hr-header" style="{{.S.AccentBorder}}">
		<div class="hr-identity">
			{{- with .Photo}}<img class="photo photo-md photo-rounded" src="{{.}}" alt="profile">{{end}}
			<div><h1 class="name" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
			{{- with .Basics.JobTitle}}<div class="job" style="{{$.S.Job}}{{$.S.AccentColor}}">{{.}}</div>{{end}}</div>
		</div>
		{{template "contact-stack" .}}
	</header>{{end}}
	<div class="grid grid-8-4">
		<div class="col-main">{{range .Right}}{{.}}{{end}}</div>
		<aside class="col-aside">{{range .Left}}{{.}}{{end}}</aside>
	</div>
</div>{{end}}

{{define "centered-split"}}<div class="sk sk-centered-split">
	{{- if .Header}}<div class="identity cs-header">
		<h1 class="name name-caps" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job job-caps muted" style="{{$.S.Job}}">{{.}}</p>{{end}}
		<div class="contact contact-inline" style="{{.S.Contact}}">
			{{- with .Basics.Email}}<span>{{.}}</span>{{end}}
			{{- with .Basics.Phone}}<span>&bull;</span><span>{{.}}</span>{{end}}
		</div>
	</div>{{end}}
	<div class="grid grid-halves">
		<div>{{range .Right}}{{.}}{{end}}</div>
		<div>{{range .Left}}{{.}}{{end}}</div>
	</div>
</div>{{end}}

{{define "avatar-header"}}<div class="sk sk-avatar-header">
	{{- if .Header}}<div class="identity ah-header">
		{{- if .Photo}}<img class="photo photo-md photo-round shadow" src="{{.Photo}}" alt="profile">
		{{- else}}<div class="avatar avatar-md" style="{{.S.AccentBackground}}">{{.Initials}}</div>{{end}}
		<div><h1 class="name" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job faded" style="{{$.S.Job}}{{$.S.AccentColor}}">{{.}}</p>{{end}}</div>
	</div>{{end}}
	<div class="grid grid-2-1">
		<div class="col-main">{{range .Right}}{{.}}{{end}}</div>
		<aside class="col-aside ah-aside">{{range .Left}}{{.}}{{end}}</aside>
	</div>
</div>{{end}}

{{define "color-band"}}<div class="sk sk-color-band">
	{{- if .Header}}<div class="identity cb-band" style="{{.S.AccentBackground}}">
		<h1 class="name name-heavy" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job" style="{{$.S.Job}}">{{.}}</p>{{end}}
	</div>{{end}}
	<div class="grid grid-4-8 cb-body">
		<aside class="col-aside cb-aside">{{range .Left}}{{.}}{{end}}</aside>
		<main class="col-main">{{range .Right}}{{.}}{{end}}</main>
	</div>
</div>{{end}}

{{define "label-strip"}}<div class="sk sk-label-strip">
	{{- if .Header}}<header class="identity ls-header">
		<div><h1 class="name" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job job-caps muted" style="{{$.S.Job}}">{{.}}</p>{{end}}</div>
		{{template "contact-stack" .}}
	</header>{{end}}
	<div class="ls-rows">
	{{- range .Rows}}
		<div class="ls-row"><div class="ls-label" style="{{$.S.AccentColor}}">{{.Label}}</div><div class="ls-body">{{.Body}}</div></div>
	{{- end}}
	</div>
</div>{{end}}

{{define "dark-card"}}<div class="sk sk-dark-card">
	{{- if .Header}}<div class="identity dc-card">
		<div><h1 class="name" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.JobTitle}}<p class="job faded" style="{{$.S.Job}}">{{.}}</p>{{end}}</div>
		{{template "contact-stack" .}}
	</div>{{end}}
	<div class="grid grid-1-2">
		<aside class="col-aside">{{range .Left}}{{.}}{{end}}</aside>
		<main class="col-main dc-main" style="{{.S.AccentBorder}}">{{range .Right}}{{.}}{{end}}</main>
	</div>
</div>{{end}}

{{define "inverted-sidebar"}}<div class="sk sk-inverted-sidebar">
	<aside class="is-aside">
	{{- if .Header}}<div class="identity is-identity">
		{{- if .Photo}}<img class="photo photo-lg photo-round is-photo" src="{{.Photo}}" alt="profile">
		{{- else}}<div class="avatar avatar-sm is-avatar" style="{{.S.AccentBorder}}">{{.Initial}}</div>{{end}}
		<h1 class="name" style="{{.S.Name}}">{{.Basics.FullName}}</h1>
		{{- with .Basics.Email}}<div class="contact is-contact break-all" style="{{$.S.Contact}}">{{.}}</div>{{end}}
	</div>{{end}}
	{{- range .Left}}<div class="is-block">{{.}}</div>{{end}}
	</aside>
	<main class="is-main">{{range .Right}}{{.}}{{end}}</main>
</div>{{end}}

{{define "watermark"}}<div class="watermark" aria-hidden="true"><div class="watermark-mark">MyCV.guru</div></div>{{end}}

{{define "page"}}<div class="page-sheet" role="document" aria-label="Resume page" data-page="{{.Index}}" data-skeleton="{{.Skeleton}}" style="{{.PageStyle}}">
{{.Body}}
{{- if .Watermark}}{{template "watermark"}}{{end}}
</div>{{end}}
`

var skeletonTemplates = template.Must(template.New("skeletons").Parse(skeletonTemplateString))
