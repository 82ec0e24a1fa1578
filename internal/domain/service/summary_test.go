package service

import (
	"strings"
	"testing"

	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

func TestRenderSummary(t *testing.T) {
	rows := []valueobject.ProbeRow{
		{Address: "1.1.1.1", Latency: "120.5", Speed: "12.3", Datacenter: "HKG", Complete: true},
		{Address: "1.1.1.2", Latency: "130.0", Speed: " ", Datacenter: "SJC", Complete: true},
		{Address: "1.1.1.3", Complete: false},
	}
	got := RenderSummary(valueobject.FamilyIPv4, rows, []string{"a.example.com", "b.example.com", "c.example.com"})

	want := strings.Join([]string{
		"IPv4 地址：",
		"1.1.1.1",
		"1.1.1.2",
		summaryRule,
		"域名：",
		"a.example.com",
		"b.example.com",
		summaryRule,
		"平均延迟：",
		"120.5 ms",
		"130.0 ms",
		summaryRule,
		"下载速度：",
		"12.3 MB/s",
		summaryRule,
		"数据中心：",
		"HKG",
		"SJC",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("RenderSummary() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSummary_NoHostnames(t *testing.T) {
	rows := []valueobject.ProbeRow{{Address: "2606:4700::1", Latency: "1", Speed: "2", Datacenter: "LAX", Complete: true}}
	got := RenderSummary(valueobject.FamilyIPv6, rows, nil)
	if !strings.HasPrefix(got, "IPv6 地址：\n2606:4700::1\n") {
		t.Errorf("unexpected summary %q", got)
	}
	if !strings.Contains(got, "域名：\n"+summaryRule) {
		t.Errorf("expected empty hostname section, got %q", got)
	}
}
