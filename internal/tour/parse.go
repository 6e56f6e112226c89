package tour

import (
	"github.com/tidwall/gjson"
)

const successResultCode = "0000"

// extractItemNodes checks the envelope's resultCode and returns response.body.items.item.
// Failure codes and a missing, non-array or empty item node all yield nil.
func (c *Client) extractItemNodes(body []byte, operation string) []gjson.Result {
	if !gjson.ValidBytes(body) {
		c.log.Warn("tour_api_invalid_json", "operation", operation)
		c.observer.UpstreamCall(operation, OutcomeInvalidJSON)
		return nil
	}

	root := gjson.ParseBytes(body)
	resultCode := root.Get("response.header.resultCode").String()
	if resultCode != successResultCode {
		c.log.Warn("tour_api_result_code", "operation", operation, "result_code", resultCode)
		c.observer.UpstreamCall(operation, OutcomeResultCode)
		return nil
	}

	items := root.Get("response.body.items.item")
	if !items.IsArray() {
		c.observer.UpstreamCall(operation, OutcomeEmpty)
		return nil
	}
	nodes := items.Array()
	if len(nodes) == 0 {
		c.observer.UpstreamCall(operation, OutcomeEmpty)
		return nil
	}

	c.observer.UpstreamCall(operation, OutcomeOK)
	return nodes
}

func (c *Client) parseList(body []byte, operation string) *Response {
	nodes := c.extractItemNodes(body, operation)
	if len(nodes) == 0 {
		return emptyResponse()
	}

	items := make([]Item, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, toItem(node))
	}
	return &Response{Items: items}
}

func (c *Client) parseDetail(body []byte, operation string) *DetailResponse {
	nodes := c.extractItemNodes(body, operation)
	if len(nodes) == 0 {
		return emptyDetailResponse()
	}

	items := make([]DetailItem, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, toDetailItem(node))
	}
	return &DetailResponse{Items: items}
}

func toItem(node gjson.Result) Item {
	return Item{
		ContentID:     node.Get("contentid").String(),
		ContentTypeID: node.Get("contenttypeid").String(),
		CreatedTime:   node.Get("createdtime").String(),
		ModifiedTime:  node.Get("modifiedtime").String(),
		Title:         node.Get("title").String(),
		Addr1:         textField(node, "addr1"),
		AreaCode:      textField(node, "areacode"),
		FirstImage:    textField(node, "firstimage"),
		FirstImage2:   textField(node, "firstimage2"),
		MapX:          textField(node, "mapx"),
		MapY:          textField(node, "mapy"),
		Distance:      textField(node, "dist"),
		MLevel:        textField(node, "mlevel"),
		SigunguCode:   textField(node, "sigungucode"),
		LDongRegnCd:   textField(node, "lDongRegnCd"),
		LDongSignguCd: textField(node, "lDongSignguCd"),
	}
}

func toDetailItem(node gjson.Result) DetailItem {
	return DetailItem{
		ContentID:  node.Get("contentid").String(),
		Title:      node.Get("title").String(),
		Overview:   textField(node, "overview"),
		Addr1:      textField(node, "addr1"),
		MapX:       textField(node, "mapx"),
		MapY:       textField(node, "mapy"),
		FirstImage: textField(node, "firstimage"),
		Tel:        textField(node, "tel"),
		Homepage:   textField(node, "homepage"),
	}
}

// textField returns the field only when it is a JSON string.
func textField(node gjson.Result, field string) *string {
	v := node.Get(field)
	if v.Type != gjson.String {
		return nil
	}
	return strPtr(v.Str)
}
