// SPDX-License-Identifier: MPL-2.0

package hostdb

// Registry data for the CC, CC 2014 and CC 2015 generations. Host version
// spans come from the CEP compatibility matrix each release shipped with;
// the max of a span is the last point release of that generation.
func init() {
	registerFamily(Family{Name: "cc", DisplayName: "CC", Epoch: 1})
	registerFamily(Family{Name: "cc2014", DisplayName: "CC 2014", Epoch: 2})
	registerFamily(Family{Name: "cc2015", DisplayName: "CC 2015", Epoch: 3})

	// CC
	register(ProductRecord{
		Key: "photoshop", Family: "cc", DisplayName: "Photoshop",
		HostIDs:         []string{"PHSP", "PHXS"},
		Range:           vr("14.0", "14.9"),
		ExecutableNames: execs("Photoshop.exe", "Adobe Photoshop CC.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "illustrator", Family: "cc", DisplayName: "Illustrator",
		HostIDs:         []string{"ILST"},
		Range:           vr("17.0", "17.9"),
		ExecutableNames: execs("Support Files\\Contents\\Windows\\Illustrator.exe", "Adobe Illustrator.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "indesign", Family: "cc", DisplayName: "InDesign",
		HostIDs:         []string{"IDSN"},
		Range:           vr("9.0", "9.9"),
		ExecutableNames: execs("InDesign.exe", "Adobe InDesign CC.app"),
	})
	register(ProductRecord{
		Key: "incopy", Family: "cc", DisplayName: "InCopy",
		HostIDs:         []string{"AICY"},
		Range:           vr("9.0", "9.9"),
		ExecutableNames: execs("InCopy.exe", "Adobe InCopy CC.app"),
	})
	register(ProductRecord{
		Key: "premiere", Family: "cc", DisplayName: "Premiere Pro",
		HostIDs:         []string{"PPRO"},
		Range:           vr("7.0", "7.9"),
		ExecutableNames: execs("Adobe Premiere Pro.exe", "Adobe Premiere Pro CC.app"),
	})
	register(ProductRecord{
		Key: "aftereffects", Family: "cc", DisplayName: "After Effects",
		HostIDs:         []string{"AEFT"},
		Range:           vr("12.0", "12.9"),
		ExecutableNames: execs("Support Files\\AfterFX.exe", "Adobe After Effects CC.app"),
	})
	register(ProductRecord{
		Key: "prelude", Family: "cc", DisplayName: "Prelude",
		HostIDs:         []string{"PRLD"},
		Range:           vr("2.0", "2.9"),
		ExecutableNames: execs("Adobe Prelude.exe", "Adobe Prelude CC.app"),
	})
	register(ProductRecord{
		Key: "flash", Family: "cc", DisplayName: "Flash Pro",
		HostIDs:               []string{"FLPR"},
		Range:                 vr("13.0", "13.9"),
		ExecutableNames:       execs("Flash.exe", "Adobe Flash CC.app"),
		InstallFolderOverride: "Adobe Flash CC",
	})
	register(ProductRecord{
		Key: "dreamweaver", Family: "cc", DisplayName: "Dreamweaver",
		HostIDs:         []string{"DRWV"},
		Range:           vr("13.0", "13.9"),
		ExecutableNames: execs("Dreamweaver.exe", "Adobe Dreamweaver CC.app"),
	})

	// CC 2014
	register(ProductRecord{
		Key: "photoshop", Family: "cc2014", DisplayName: "Photoshop",
		HostIDs:         []string{"PHSP", "PHXS"},
		Range:           vr("15.0", "15.9"),
		ExecutableNames: execs("Photoshop.exe", "Adobe Photoshop CC 2014.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "illustrator", Family: "cc2014", DisplayName: "Illustrator",
		HostIDs:         []string{"ILST"},
		Range:           vr("18.0", "18.9"),
		ExecutableNames: execs("Support Files\\Contents\\Windows\\Illustrator.exe", "Adobe Illustrator.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "indesign", Family: "cc2014", DisplayName: "InDesign",
		HostIDs:         []string{"IDSN"},
		Range:           vr("10.0", "10.9"),
		ExecutableNames: execs("InDesign.exe", "Adobe InDesign CC 2014.app"),
	})
	register(ProductRecord{
		Key: "incopy", Family: "cc2014", DisplayName: "InCopy",
		HostIDs:         []string{"AICY"},
		Range:           vr("10.0", "10.9"),
		ExecutableNames: execs("InCopy.exe", "Adobe InCopy CC 2014.app"),
	})
	register(ProductRecord{
		Key: "premiere", Family: "cc2014", DisplayName: "Premiere Pro",
		HostIDs:         []string{"PPRO"},
		Range:           vr("8.0", "8.9"),
		ExecutableNames: execs("Adobe Premiere Pro.exe", "Adobe Premiere Pro CC 2014.app"),
	})
	register(ProductRecord{
		Key: "aftereffects", Family: "cc2014", DisplayName: "After Effects",
		HostIDs:         []string{"AEFT"},
		Range:           vr("13.0", "13.4"),
		ExecutableNames: execs("Support Files\\AfterFX.exe", "Adobe After Effects CC 2014.app"),
	})
	register(ProductRecord{
		Key: "prelude", Family: "cc2014", DisplayName: "Prelude",
		HostIDs:         []string{"PRLD"},
		Range:           vr("3.0", "3.9"),
		ExecutableNames: execs("Adobe Prelude.exe", "Adobe Prelude CC 2014.app"),
	})
	register(ProductRecord{
		Key: "flash", Family: "cc2014", DisplayName: "Flash Pro",
		HostIDs:               []string{"FLPR"},
		Range:                 vr("14.0", "14.9"),
		ExecutableNames:       execs("Flash.exe", "Adobe Flash CC 2014.app"),
		InstallFolderOverride: "Adobe Flash CC 2014",
	})
	register(ProductRecord{
		Key: "dreamweaver", Family: "cc2014", DisplayName: "Dreamweaver",
		HostIDs:         []string{"DRWV"},
		Range:           vr("15.0", "15.9"),
		ExecutableNames: execs("Dreamweaver.exe", "Adobe Dreamweaver CC 2014.app"),
	})

	// CC 2015
	register(ProductRecord{
		Key: "photoshop", Family: "cc2015", DisplayName: "Photoshop",
		HostIDs:         []string{"PHSP", "PHXS"},
		Range:           vr("16.0", "16.9"),
		ExecutableNames: execs("Photoshop.exe", "Adobe Photoshop CC 2015.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "illustrator", Family: "cc2015", DisplayName: "Illustrator",
		HostIDs:         []string{"ILST"},
		Range:           vr("19.0", "19.9"),
		ExecutableNames: execs("Support Files\\Contents\\Windows\\Illustrator.exe", "Adobe Illustrator.app"),
		Supports64Bit:   true,
	})
	register(ProductRecord{
		Key: "indesign", Family: "cc2015", DisplayName: "InDesign",
		HostIDs:         []string{"IDSN"},
		Range:           vr("11.0", "11.9"),
		ExecutableNames: execs("InDesign.exe", "Adobe InDesign CC 2015.app"),
	})
	register(ProductRecord{
		Key: "incopy", Family: "cc2015", DisplayName: "InCopy",
		HostIDs:         []string{"AICY"},
		Range:           vr("11.0", "11.9"),
		ExecutableNames: execs("InCopy.exe", "Adobe InCopy CC 2015.app"),
	})
	register(ProductRecord{
		Key: "premiere", Family: "cc2015", DisplayName: "Premiere Pro",
		HostIDs:         []string{"PPRO"},
		Range:           vr("9.0", "9.9"),
		ExecutableNames: execs("Adobe Premiere Pro.exe", "Adobe Premiere Pro CC 2015.app"),
	})
	register(ProductRecord{
		Key: "aftereffects", Family: "cc2015", DisplayName: "After Effects",
		HostIDs:         []string{"AEFT"},
		Range:           vr("13.5", "13.9"),
		ExecutableNames: execs("Support Files\\AfterFX.exe", "Adobe After Effects CC 2015.app"),
	})
	register(ProductRecord{
		Key: "prelude", Family: "cc2015", DisplayName: "Prelude",
		HostIDs:         []string{"PRLD"},
		Range:           vr("4.0", "4.9"),
		ExecutableNames: execs("Adobe Prelude.exe", "Adobe Prelude CC 2015.app"),
	})
	register(ProductRecord{
		Key: "flash", Family: "cc2015", DisplayName: "Flash Pro",
		HostIDs:               []string{"FLPR"},
		Range:                 vr("15.0", "15.9"),
		ExecutableNames:       execs("Flash.exe", "Adobe Flash CC 2015.app"),
		InstallFolderOverride: "Adobe Flash CC 2015",
	})
	register(ProductRecord{
		Key: "dreamweaver", Family: "cc2015", DisplayName: "Dreamweaver",
		HostIDs:         []string{"DRWV"},
		Range:           vr("16.0", "16.9"),
		ExecutableNames: execs("Dreamweaver.exe", "Adobe Dreamweaver CC 2015.app"),
	})
}
