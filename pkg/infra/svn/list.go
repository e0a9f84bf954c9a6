package svn

import (
	"encoding/xml"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// listXML mirrors the output of `svn list --xml`
type listXML struct {
	Lists []struct {
		Path    string `xml:"path,attr"`
		Entries []struct {
			Kind   string `xml:"kind,attr"`
			Name   string `xml:"name"`
			Commit struct {
				Revision int64  `xml:"revision,attr"`
				Author   string `xml:"author"`
				Date     string `xml:"date"`
			} `xml:"commit"`
		} `xml:"entry"`
	} `xml:"list"`
}

func parseList(data []byte) ([]model.Dirent, error) {
	var doc listXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse svn list output")
	}

	var dirents []model.Dirent
	for _, l := range doc.Lists {
		for _, e := range l.Entries {
			d := model.Dirent{
				Name:     e.Name,
				Kind:     e.Kind,
				Revision: e.Commit.Revision,
				Author:   e.Commit.Author,
			}
			if e.Commit.Date != "" {
				if t, err := time.Parse(time.RFC3339Nano, e.Commit.Date); err == nil {
					d.Date = t
				}
			}
			dirents = append(dirents, d)
		}
	}

	return dirents, nil
}
