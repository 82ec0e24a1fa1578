package service

import (
	"fmt"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain/valueobject"
)

const summaryRule = "━━━━━━━━━━━━━━━━━━━"

// RenderSummary formats the notification body for one family. Only complete
// rows are listed, and hostnames are cut to the number of listed addresses.
func RenderSummary(family valueobject.Family, rows []valueobject.ProbeRow, hostnames []string) string {
	var complete []valueobject.ProbeRow
	for _, r := range rows {
		if r.Complete {
			complete = append(complete, r)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s 地址：\n", family)
	for _, r := range complete {
		b.WriteString(r.Address + "\n")
	}

	section(&b, "域名：")
	for i, h := range hostnames {
		if i >= len(complete) {
			break
		}
		b.WriteString(h + "\n")
	}

	section(&b, "平均延迟：")
	for _, r := range complete {
		fmt.Fprintf(&b, "%s ms\n", r.Latency)
	}

	section(&b, "下载速度：")
	for _, r := range complete {
		if speed := strings.TrimSpace(r.Speed); speed != "" {
			fmt.Fprintf(&b, "%s MB/s\n", speed)
		}
	}

	section(&b, "数据中心：")
	for _, r := range complete {
		b.WriteString(r.Datacenter + "\n")
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(summaryRule + "\n" + title + "\n")
}
