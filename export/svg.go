/*
 * Copyright (c) 2020. Temple3x (temple3x@gmail.com)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package export

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/xbytes"
)

const (
	svgWidth      = 720
	svgPadding    = 32
	svgLineHeight = 22
	svgFont       = "Inter, Arial, sans-serif"
	svgColor      = "#0f172a"

	// SVGTitle is the first line of the image.
	SVGTitle = "RustFS Erasure Code Results"
)

// SVGHeight returns the image height for n rows.
func SVGHeight(n int) int {
	return svgPadding*2 + svgLineHeight*(n+2)
}

// WriteSVG writes the summary as an SVG image with one text line per row.
func WriteSVG(w io.Writer, plan ec.Plan) error {
	if err := checkPlan(plan); err != nil {
		return err
	}

	rows := Summary(plan)
	h := SVGHeight(len(rows))

	buf := xbytes.GetBuffer()
	defer buf.Close()

	fmt.Fprintf(buf, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		svgWidth, h, svgWidth, h)
	fmt.Fprintf(buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"#ffffff\" />\n")
	fmt.Fprintf(buf, "  <text x=\"%d\" y=\"%d\" fill=\"%s\" font-size=\"20\" font-family=\"%s\" font-weight=\"600\">%s</text>\n",
		svgPadding, svgPadding, svgColor, svgFont, SVGTitle)
	buf.WriteString("  ")
	for i, p := range rows {
		fmt.Fprintf(buf, "<text x=\"%d\" y=\"%d\" fill=\"%s\" font-size=\"14\" font-family=\"%s\">",
			svgPadding, svgPadding+svgLineHeight*(i+2), svgColor, svgFont)
		if err := xml.EscapeText(buf, []byte(p.Label+": "+p.Value)); err != nil {
			return err
		}
		buf.WriteString("</text>")
	}
	buf.WriteString("\n</svg>")

	_, err := w.Write(buf.Bytes())
	return err
}
