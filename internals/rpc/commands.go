package rpc

import "github.com/jadenj13/gitpress/internals/gh"

// Command names exposed to the webview. Each has exactly one typed
// params/result pair; there are no positional argument arrays.
const (
	CmdGetRepo                 = "get_repo"
	CmdGetIssues               = "get_issues"
	CmdGetIssuesWithFilter     = "get_issues_with_filter"
	CmdGetIssueCount           = "get_issue_count"
	CmdGetIssueCountWithFilter = "get_issue_count_with_filter"
	CmdCreateIssue             = "create_issue"
	CmdUpdateIssue             = "update_issue"
	CmdGetLabels               = "get_labels"
	CmdCreateLabel             = "create_label"
	CmdUpdateLabel             = "update_label"
	CmdDeleteLabel             = "delete_label"
	CmdGetRef                  = "get_ref"
	CmdUpdateRef               = "update_ref"
	CmdGetCommit               = "get_commit"
	CmdCreateCommit            = "create_commit"
	CmdCreateBlob              = "create_blob"
	CmdCreateTree              = "create_tree"
	CmdGetSettings             = "get_settings"
	CmdUploadImage             = "upload_image"
	CmdOpenExternalLink        = "open_external_link"
)

// Host-pushed notifications. Fire-and-forget: no response, no
// correlation.
const (
	NotifyShowSuccess = "show_success"
	NotifyShowError   = "show_error"
)

type PageParams struct {
	Page int `json:"page"`
}

type FilterParams struct {
	Page   int      `json:"page"`
	Labels []string `json:"labels"`
	Title  string   `json:"title"`
}

type CountParams struct {
	Labels []string `json:"labels"`
	Title  string   `json:"title"`
}

type CountResult struct {
	Count int `json:"count"`
}

type UpdateIssueParams struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// UpdateLabelParams edits the label currently called Name.
type UpdateLabelParams struct {
	Name  string        `json:"name"`
	Label gh.LabelInput `json:"label"`
}

type NameParams struct {
	Name string `json:"name"`
}

type RefParams struct {
	Ref string `json:"ref"`
}

type UpdateRefParams struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type SHAParams struct {
	SHA string `json:"sha"`
}

type CreateBlobParams struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// SHAResult answers every object-creation command.
type SHAResult struct {
	SHA string `json:"sha"`
}

type CreateTreeParams struct {
	BaseTree string         `json:"baseTree"`
	Entries  []gh.TreeEntry `json:"entries"`
}

type CreateCommitParams struct {
	Message string   `json:"message"`
	Tree    string   `json:"tree"`
	Parents []string `json:"parents"`
}

type UploadImageParams struct {
	Content string `json:"content"` // base64
	Path    string `json:"path"`
}

type UploadImageResult struct {
	URL string `json:"url"`
}

type LinkParams struct {
	URL string `json:"url"`
}

// ToastParams is the payload of both toast notifications.
type ToastParams struct {
	Message string `json:"message"`
}

// SettingsResult is get_settings' answer; the token never leaves the
// host.
type SettingsResult struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}
