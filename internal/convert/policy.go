package convert

// Sandbox is the neutral file-system sandbox level.
type Sandbox string

// Sandbox levels.
const (
	SandboxStrict     Sandbox = "strict"
	SandboxNormal     Sandbox = "normal"
	SandboxPermissive Sandbox = "permissive"
)

// Approval is the neutral command approval policy.
type Approval string

// Approval policies.
const (
	ApprovalAlways    Approval = "always"
	ApprovalOnError   Approval = "on-error"
	ApprovalOnRequest Approval = "on-request"
	ApprovalNever     Approval = "never"
)

// CodexSandbox is a Codex sandbox_mode value.
type CodexSandbox string

// Codex sandbox modes.
const (
	CodexReadOnly         CodexSandbox = "read-only"
	CodexWorkspaceWrite   CodexSandbox = "workspace-write"
	CodexDangerFullAccess CodexSandbox = "danger-full-access"
)

// CodexApproval is a Codex approval_policy value.
type CodexApproval string

// Codex approval policies.
const (
	CodexUntrusted CodexApproval = "untrusted"
	CodexOnFailure CodexApproval = "on-failure"
	CodexOnRequest CodexApproval = "on-request"
	CodexNever     CodexApproval = "never"
)

// Fallbacks for values outside the tables.
const (
	DefaultSandbox       = SandboxNormal
	DefaultApproval      = ApprovalOnError
	DefaultCodexSandbox  = CodexWorkspaceWrite
	DefaultCodexApproval = CodexOnFailure
)

// Codex model defaults.
const (
	DefaultCodexModel    = "o3"
	DefaultCodexProvider = "openai"
)

var sandboxToCodex = map[Sandbox]CodexSandbox{
	SandboxStrict:     CodexReadOnly,
	SandboxNormal:     CodexWorkspaceWrite,
	SandboxPermissive: CodexDangerFullAccess,
}

var approvalToCodex = map[Approval]CodexApproval{
	ApprovalAlways:    CodexUntrusted,
	ApprovalOnError:   CodexOnFailure,
	ApprovalOnRequest: CodexOnRequest,
	ApprovalNever:     CodexNever,
}

var (
	sandboxFromCodex  = invert(sandboxToCodex)
	approvalFromCodex = invert(approvalToCodex)
)

// ToCodexSandbox maps a neutral sandbox level to Codex.
func ToCodexSandbox(s Sandbox) CodexSandbox {
	if c, ok := sandboxToCodex[s]; ok {
		return c
	}
	return DefaultCodexSandbox
}

// FromCodexSandbox maps a Codex sandbox mode to the neutral level.
func FromCodexSandbox(c CodexSandbox) Sandbox {
	if s, ok := sandboxFromCodex[c]; ok {
		return s
	}
	return DefaultSandbox
}

// ToCodexApproval maps a neutral approval policy to Codex.
func ToCodexApproval(a Approval) CodexApproval {
	if c, ok := approvalToCodex[a]; ok {
		return c
	}
	return DefaultCodexApproval
}

// FromCodexApproval maps a Codex approval policy to the neutral one.
func FromCodexApproval(c CodexApproval) Approval {
	if a, ok := approvalFromCodex[c]; ok {
		return a
	}
	return DefaultApproval
}

// KnownSandbox reports whether s is a neutral sandbox level.
func KnownSandbox(s string) bool {
	_, ok := sandboxToCodex[Sandbox(s)]
	return ok
}

// KnownApproval reports whether s is a neutral approval policy.
func KnownApproval(s string) bool {
	_, ok := approvalToCodex[Approval(s)]
	return ok
}

// KnownCodexSandbox reports whether s is a Codex sandbox mode.
func KnownCodexSandbox(s string) bool {
	_, ok := sandboxFromCodex[CodexSandbox(s)]
	return ok
}

// KnownCodexApproval reports whether s is a Codex approval policy.
func KnownCodexApproval(s string) bool {
	_, ok := approvalFromCodex[CodexApproval(s)]
	return ok
}

func invert[K, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
