package rusprofile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reOutOf      = regexp.MustCompile(`из\s*([\d\s]+)`)
	reCaseCount  = regexp.MustCompile(`(\d+)\s*дел`)
	reCaseSum    = regexp.MustCompile(`на сумму\s*([\d\s]+(?:млн)?\s*руб)`)
	reCodeCount  = regexp.MustCompile(`\((\d+)\)`)
	rePersonHref = regexp.MustCompile(`^/person/`)
)

// extractCompany pulls the company fields out of a profile page. Every field
// is best-effort: a missing element yields an empty string, never a failure.
func extractCompany(doc *goquery.Document) map[string]any {
	data := map[string]any{}

	data["company_name"] = text(doc.Find(`h1[itemprop="name"]`))
	data["full_name"] = text(doc.Find("span#clip_name-long"))
	data["ogrn"] = text(doc.Find("span#clip_ogrn"))
	data["inn"] = text(doc.Find("span#clip_inn"))
	data["kpp"] = text(doc.Find("span#clip_kpp"))
	data["registration_date"] = text(doc.Find(`dd[itemprop="foundingDate"]`))
	data["legal_address"] = text(doc.Find("span#clip_address"))

	// Charter capital sits in a dt/dd pair keyed by its Russian label.
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if strings.TrimSpace(dt.Text()) == "Уставный капитал" {
			data["authorized_capital"] = text(dt.NextFiltered("dd"))
			return false
		}
		return true
	})
	if _, ok := data["authorized_capital"]; !ok {
		data["authorized_capital"] = ""
	}

	status := doc.Find("span.company-header__icon.success").First()
	if status.Length() == 0 {
		status = doc.Find("span.company-header__icon.danger").First()
	}
	data["status"] = text(status)

	data["director"] = text(doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return rePersonHref.MatchString(href)
	}).First())

	for _, code := range []string{"okpo", "okato", "oktmo", "okfs", "okogu", "okopf"} {
		data[code] = text(doc.Find("span#clip_" + code))
	}

	data["founder"] = text(doc.Find(".tile-item.founders-tile .founder-item__title a").First())
	data["total_connections"] = text(doc.Find("a.num.gtm_c_all").First())
	data["connections_by_address"] = text(doc.Find("a.num.gtm_c_1").First())
	data["connections_by_director"] = text(doc.Find("a.num.gtm_c_2").First())
	data["connections_by_founder"] = text(doc.Find("a.num.gtm_c_3").First())

	if gz := doc.Find("div.tile-item.tab-parent.gz-tile").First(); gz.Length() > 0 {
		if dl := gz.Find("dl.founder-item__dl").First(); dl.Length() > 0 {
			data["government_contracts_count"] = text(dl.Find("dt").First())
			data["government_contracts_sum"] = text(dl.Find("dd").First())
		}
		data["main_contractor"] = text(gz.Find(".founder-item__title a").First())
	}

	if arb := doc.Find("div.tile-item.tab-parent.arbitr-tile").First(); arb.Length() > 0 {
		txt := joined(arb.Find("div.connexion-col__num.tosmall").First())
		if m := reCaseCount.FindStringSubmatch(txt); m != nil {
			data["arbitration_cases"] = m[1] + " дела"
		}
		if m := reCaseSum.FindStringSubmatch(txt); m != nil {
			data["arbitration_sum"] = m[1]
		}
	}

	doc.Find("div.tile-item.taxes-tile .connexion-col").Each(func(_ int, col *goquery.Selection) {
		title := strings.ToLower(strings.TrimSpace(col.Find("div.connexion-col__title").Text()))
		num := text(col.Find("div.connexion-col__num.tosmall"))
		if title == "" || num == "" {
			return
		}
		if strings.Contains(title, "налоги") {
			data["taxes"] = num
		}
		if strings.Contains(title, "взносы") {
			data["contributions"] = num
		}
	})

	return data
}

// extractOKVED pulls industry context off an activity-code page: industry
// name, rankings, average revenue and the top companies sharing the code.
func extractOKVED(doc *goquery.Document) map[string]any {
	okved := map[string]any{}

	doc.Find(".text-box").Each(func(_ int, box *goquery.Selection) {
		subtitle := box.Find("div.sub-title").First()
		if subtitle.Length() == 0 {
			return
		}
		title := strings.TrimSpace(subtitle.Text())
		body := ""
		if node := subtitle.Nodes[0]; node.NextSibling != nil {
			body = strings.TrimSpace(node.NextSibling.Data)
		}
		switch {
		case title == "Отрасль":
			okved["industry"] = body
		case strings.Contains(title, "Основной вид"):
			okved["main_activity"] = body
		case title == "Регион":
			okved["region"] = body
		}
	})

	doc.Find(".number-box").Each(func(_ int, nb *goquery.Selection) {
		title := strings.TrimSpace(strings.Join(strings.Fields(nb.Find("div.title").Text()), " "))
		num := text(nb.Find("span.num"))
		if title == "" || num == "" {
			return
		}
		switch {
		case strings.Contains(title, "в России") && strings.Contains(title, "Место в отрасли"):
			okved["rank_russia"] = num
			okved["total_russia"] = outOf(nb)
		case strings.Contains(title, "в регионе"):
			okved["rank_region"] = num
			okved["total_region"] = outOf(nb)
		case strings.Contains(title, "Средняя выручка"):
			okved["average_revenue"] = num + " млн руб."
		}
	})

	var tops []string
	doc.Find(".okved-list li.okved-item").Each(func(i int, item *goquery.Selection) {
		// The subject company occupies the first slot; take the next five.
		if i < 1 || i > 5 {
			return
		}
		name := item.Find(".okved-item__text .name a").First()
		if name.Length() == 0 {
			name = item.Find(".okved-item__text .name").First()
		}
		if t := text(name); t != "" {
			tops = append(tops, t)
		}
	})
	okved["top_companies"] = tops

	total := 0
	if m := reCodeCount.FindStringSubmatch(doc.Find(".content-frame__title").First().Text()); m != nil {
		total, _ = strconv.Atoi(m[1])
	}
	okved["total_codes"] = total
	additional := total - 1
	if additional < 0 {
		additional = 0
	}
	okved["additional_codes"] = additional

	return okved
}

func outOf(s *goquery.Selection) string {
	if m := reOutOf.FindStringSubmatch(s.Text()); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}

func joined(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
