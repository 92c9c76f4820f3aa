package report

import (
	"html/template"
	"io"

	"github.com/northloop/chatgpt-backup/internal"
)

// HTMLReporter renders the forensic report: run and device provenance
// tables, case metadata, and the full transcripts with client-side search.
type HTMLReporter struct{}

// Render renders the run as an HTML report
func (r *HTMLReporter) Render(run *internal.Run, w io.Writer) error {
	tmpl, err := template.New("report").Parse(htmlReportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, newHTMLRun(run))
}

// Extension returns the file extension for this format
func (r *HTMLReporter) Extension() string {
	return "html"
}

// htmlRun is the view model handed to the template. Timestamps are
// pre-formatted and image placeholders pre-substituted so the template
// stays free of logic.
type htmlRun struct {
	GeneratedAt   string
	SourceDir     string
	Device        internal.DeviceInfo
	Case          internal.CaseInfo
	HasCase       bool
	Conversations []htmlConversation
	TotalMessages int
	TotalPrompts  int
	FilesTotal    int
	FilesFailed   int
	Errors        []string
}

type htmlConversation struct {
	Index        int
	Title        string
	File         string
	SHA256       string
	Created      string
	Modified     string
	Model        string
	RemoteID     string
	Archived     string
	MessageCount int
	PromptCount  int
	Messages     []htmlMessage
}

type htmlMessage struct {
	Role    string
	Time    string
	Content string
}

func newHTMLRun(run *internal.Run) *htmlRun {
	view := &htmlRun{
		GeneratedAt: run.GeneratedAt.Format("2006-01-02 15:04:05"),
		SourceDir:   run.SourceDir,
		Device:      run.Device,
		Case:        run.Case,
		HasCase:     run.Case != (internal.CaseInfo{}),
		FilesTotal:  run.Stats.FilesTotal,
		FilesFailed: run.Stats.FilesFailed,
		Errors:      run.Stats.Errors,
	}

	for i, conv := range run.Conversations {
		view.TotalMessages += conv.MessageCount
		view.TotalPrompts += conv.UserMessageCount

		hc := htmlConversation{
			Index:        i + 1,
			Title:        conv.Title,
			File:         conv.File,
			SHA256:       conv.SHA256,
			Created:      internal.FormatCocoa(conv.CreationDate),
			Modified:     internal.FormatCocoa(conv.ModificationDate),
			Model:        conv.Model,
			RemoteID:     shortID(conv.RemoteID),
			Archived:     boolLabel(conv.IsArchived),
			MessageCount: conv.MessageCount,
			PromptCount:  conv.UserMessageCount,
		}
		for _, msg := range conv.Messages {
			hc.Messages = append(hc.Messages, htmlMessage{
				Role:    msg.Role,
				Time:    internal.FormatCocoa(msg.Timestamp),
				Content: truncateForDisplay(SubstituteImages(msg)),
			})
		}
		view.Conversations = append(view.Conversations, hc)
	}
	return view
}

func shortID(id string) string {
	if len(id) > 20 {
		return id[:20] + "..."
	}
	return id
}

func boolLabel(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>ChatGPT Conversation Report</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #0d1117; padding: 20px; line-height: 1.6; }
.container { max-width: 1400px; margin: 0 auto; background: #161b22; border-radius: 15px; overflow: hidden; border: 1px solid #30363d; }
.header { background: linear-gradient(135deg, #1f2937 0%, #374151 100%); color: #e6edf3; padding: 40px; text-align: center; border-bottom: 2px solid #4b5563; }
.header h1 { font-size: 2.5em; margin-bottom: 10px; }
.report-meta { background: #1c2128; padding: 30px 40px; border-bottom: 2px solid #30363d; }
.report-meta h2 { color: #e6edf3; }
.content { padding: 40px; background: #161b22; }
.content h2 { color: #e6edf3; margin-bottom: 30px; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
table th { background: #21262d; color: #8b949e; text-align: left; padding: 12px; font-weight: 600; font-size: 0.9em; text-transform: uppercase; border: 1px solid #30363d; }
table td { background: #1c2128; color: #c9d1d9; padding: 12px; border: 1px solid #30363d; word-break: break-all; }
.timestamp-note { background: #2d2a1f; border: 1px solid #6b5d3f; border-radius: 8px; padding: 15px; margin: 20px 0; color: #c9a86a; }
.conversation { background: #1c2128; margin-bottom: 30px; border-radius: 12px; overflow: hidden; border: 1px solid #30363d; }
.conversation-header { background: linear-gradient(135deg, #374151 0%, #4b5563 100%); color: #e6edf3; padding: 25px; cursor: pointer; display: flex; justify-content: space-between; align-items: center; }
.conversation-title { font-size: 1.4em; font-weight: 600; }
.conversation-stats { display: flex; gap: 20px; font-size: 0.9em; }
.conversation-meta { background: #21262d; padding: 20px 25px; border-bottom: 1px solid #30363d; display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; }
.meta-field { font-size: 0.9em; color: #8b949e; }
.meta-field strong { color: #c9d1d9; }
.messages { padding: 25px; max-height: 600px; overflow-y: auto; background: #0d1117; }
.message { margin-bottom: 20px; padding: 20px; border-radius: 10px; border-left: 4px solid; border: 1px solid #30363d; }
.message.user { background: #1c2d3a; border-left-color: #4b8ec8; }
.message.assistant { background: #1a2b2e; border-left-color: #5f8575; }
.message.tool { background: #2b2416; border-left-color: #8b7355; }
.message-header { display: flex; justify-content: space-between; margin-bottom: 10px; font-size: 0.9em; }
.message-role { font-weight: bold; text-transform: uppercase; }
.message.user .message-role { color: #6ba9e5; }
.message.assistant .message-role { color: #7fb89a; }
.message.tool .message-role { color: #b8986f; }
.message-time { color: #8b949e; }
.message-content { color: #c9d1d9; white-space: pre-wrap; word-wrap: break-word; }
.collapsed .messages { display: none; }
.search-container { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 20px; margin: 20px 0; position: sticky; top: 0; z-index: 100; }
.search-input { width: 100%; background: #0d1117; border: 2px solid #30363d; border-radius: 6px; padding: 12px 15px; color: #c9d1d9; font-size: 16px; outline: none; }
.search-stats { margin-top: 10px; color: #8b949e; font-size: 0.9em; }
.message.hidden { display: none; }
.footer { background: #0d1117; color: #8b949e; padding: 30px; text-align: center; border-top: 2px solid #30363d; }
@media print { body { background: white; } .conversation { page-break-inside: avoid; } }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>ChatGPT Conversation Report</h1></div>
<div class="report-meta">
<h2>Report Summary</h2>
<table>
<tr><th>Report Generated</th><td>{{.GeneratedAt}}</td><th>Source</th><td>{{.SourceDir}}</td></tr>
<tr><th>Total Conversations</th><td>{{len .Conversations}}</td><th>Total Messages</th><td>{{.TotalMessages}}</td></tr>
<tr><th>User Prompts</th><td>{{.TotalPrompts}}</td><th>Files Failed</th><td>{{.FilesFailed}} of {{.FilesTotal}}</td></tr>
</table>
{{if .HasCase}}
<h2 style="margin-top: 30px;">Case Information</h2>
<table>
<tr><th>Case Number</th><td>{{.Case.CaseNumber}}</td><th>Evidence ID</th><td>{{.Case.EvidenceID}}</td></tr>
<tr><th>Examiner</th><td>{{.Case.Examiner}}</td><th>Notes</th><td>{{.Case.Notes}}</td></tr>
</table>
{{end}}
<h2 style="margin-top: 30px;">Device Information</h2>
<table>
<tr><th>Device Model</th><td>{{.Device.DeviceName}} ({{.Device.DeviceModel}})</td><th>Manufacturer</th><td>{{.Device.Manufacturer}}</td></tr>
<tr><th>Operating System</th><td>{{.Device.Platform}} {{.Device.OSVersion}}</td><th>Application</th><td>{{.Device.AppBundle}}</td></tr>
<tr><th>App Version</th><td>{{.Device.AppVersion}} (Build {{.Device.AppBuild}})</td><th>Screen Resolution</th><td>{{.Device.ScreenWidth}} x {{.Device.ScreenHeight}}</td></tr>
<tr><th>Locale / Timezone</th><td>{{.Device.Locale}} / {{.Device.Timezone}}</td><th>OS Build</th><td>{{.Device.OSBuild}}</td></tr>
<tr><th>User ID</th><td colspan="3">{{.Device.UserID}}</td></tr>
<tr><th>Device ID</th><td colspan="3">{{.Device.DeviceID}}</td></tr>
</table>
{{if .Errors}}
<h2 style="margin-top: 30px;">Processing Errors</h2>
<table>
{{range .Errors}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{end}}
<div class="timestamp-note"><strong>Note:</strong> Timestamps are converted from Apple Cocoa format (seconds since January 1, 2001).</div>
</div>
<div class="content">
<h2>Conversation Details</h2>
<div class="search-container">
<input type="text" class="search-input" id="searchInput" placeholder="Search messages..." onkeyup="searchMessages()">
<div class="search-stats" id="searchStats"></div>
</div>
{{range .Conversations}}
<div class="conversation" id="conv-{{.Index}}">
<div class="conversation-header" onclick="toggleConversation({{.Index}})">
<div><div class="conversation-title">{{.Title}}</div></div>
<div class="conversation-stats"><span>{{.MessageCount}} messages</span><span>{{.PromptCount}} prompts</span></div>
</div>
<div class="conversation-meta">
<div class="meta-field"><strong>File:</strong> {{.File}}</div>
<div class="meta-field"><strong>SHA-256:</strong> {{.SHA256}}</div>
<div class="meta-field"><strong>Created:</strong> {{.Created}}</div>
<div class="meta-field"><strong>Modified:</strong> {{.Modified}}</div>
<div class="meta-field"><strong>Model:</strong> {{.Model}}</div>
<div class="meta-field"><strong>Remote ID:</strong> {{.RemoteID}}</div>
<div class="meta-field"><strong>Archived:</strong> {{.Archived}}</div>
</div>
<div class="messages">
{{range .Messages}}
<div class="message {{.Role}}">
<div class="message-header"><span class="message-role">{{.Role}}</span><span class="message-time">{{.Time}}</span></div>
<div class="message-content">{{.Content}}</div>
</div>
{{end}}
</div>
</div>
{{end}}
</div>
<div class="footer">
<p><strong>ChatGPT Conversation Report</strong></p>
<p style="margin-top: 10px; opacity: 0.8; font-size: 0.9em;">Extracted conversation data from ChatGPT mobile application backup files.<br>For forensic and investigative purposes only. Handle according to data protection regulations.</p>
</div>
</div>
<script>
function toggleConversation(id) {
	document.getElementById('conv-' + id).classList.toggle('collapsed');
}
function searchMessages() {
	var term = document.getElementById('searchInput').value.toLowerCase();
	var conversations = document.querySelectorAll('.conversation');
	var matchCount = 0, visibleConvs = 0;
	conversations.forEach(function(conv) {
		var hasMatch = false;
		conv.querySelectorAll('.message').forEach(function(msg) {
			var text = msg.querySelector('.message-content').textContent.toLowerCase();
			var role = msg.querySelector('.message-role').textContent.toLowerCase();
			if (term === '' || text.includes(term) || role.includes(term)) {
				msg.classList.remove('hidden');
				hasMatch = true;
				if (term !== '') matchCount++;
			} else {
				msg.classList.add('hidden');
			}
		});
		if (hasMatch) {
			conv.style.display = 'block';
			conv.classList.remove('collapsed');
			visibleConvs++;
		} else {
			conv.style.display = 'none';
		}
	});
	var stats = document.getElementById('searchStats');
	if (term === '') {
		stats.textContent = '';
	} else {
		stats.textContent = 'Found ' + matchCount + ' message(s) in ' + visibleConvs + ' conversation(s)';
	}
}
</script>
</body>
</html>
`
