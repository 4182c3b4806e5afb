package templates

import (
	"strings"
	"testing"
)

func TestRenderGenericEmailEscapesContent(t *testing.T) {
	out := RenderGenericEmail("<b>Subject</b>", "line one\nline <script>two</script>")

	if strings.Contains(out, "<script>") {
		t.Error("body was not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;Subject&lt;/b&gt;") {
		t.Error("subject was not escaped")
	}
	if !strings.Contains(out, "line one<br>line") {
		t.Error("newlines were not converted to <br>")
	}
	if !strings.Contains(out, "whosonpole.app") {
		t.Error("footer branding missing")
	}
}
